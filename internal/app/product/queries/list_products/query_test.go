package list_products

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
	testutil.SeedProducts(t, kv, testutil.NumberedProducts(12)...)

	engine := listengine.NewEngine(repo.NewRecordStore(kv, nil), testutil.NewMockClock(),
		domain.NewRandomIDGenerator(), language.English, zap.NewNop())
	engine.Initialize(ctx)
	q := NewQuery(engine)

	t.Run("current page", func(t *testing.T) {
		res, err := q.Execute(ctx, &Request{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 2, res.PageCount)
		assert.Len(t, res.Products, 10)
		assert.Equal(t, 12, res.TotalCount)
	})

	t.Run("explicit page is clamped", func(t *testing.T) {
		res, err := q.Execute(ctx, &Request{Page: 7})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Page)
		assert.Len(t, res.Products, 2)
		assert.Equal(t, 1, engine.Snapshot().CurrentPage, "listing does not move the view")
	})
}
