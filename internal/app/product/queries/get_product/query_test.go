package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
	"github.com/light-bringer/procat-inventory/internal/app/product/repo"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
	"github.com/light-bringer/procat-inventory/internal/testutil"
)

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	testutil.SeedProducts(t, kv, testutil.NewProduct("1", "Widget", "5", testutil.Epoch))

	engine := listengine.NewEngine(repo.NewRecordStore(kv, nil), testutil.NewMockClock(),
		domain.NewRandomIDGenerator(), language.English, zap.NewNop())
	engine.Initialize(ctx)
	q := NewQuery(engine)

	dto, err := q.Execute(ctx, &Request{ProductID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Widget", dto.Name)
	assert.Equal(t, "5", dto.Quantity)

	_, err = q.Execute(ctx, &Request{ProductID: "2"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Contains(t, err.Error(), `"2"`)

	_, err = q.Execute(ctx, &Request{ProductID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)
}

func TestQuery_ExecuteIgnoresSearch(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	testutil.SeedProducts(t, kv,
		testutil.NewProduct("1", "Widget", "5", testutil.Epoch),
		testutil.NewProduct("2", "Gadget", "3", testutil.Epoch),
	)

	engine := listengine.NewEngine(repo.NewRecordStore(kv, nil), testutil.NewMockClock(),
		domain.NewRandomIDGenerator(), language.English, zap.NewNop())
	engine.Initialize(ctx)
	engine.SetSearchQuery("widget")
	require.Equal(t, 1, engine.FilteredCount())
	q := NewQuery(engine)

	dto, err := q.Execute(ctx, &Request{ProductID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", dto.Name)
}
