package update_product

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

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	testutil.SeedProducts(t, kv,
		testutil.NewProduct("1", "Widget", "5", testutil.Epoch),
		testutil.NewProduct("2", "Gadget", "5", testutil.Epoch),
	)

	engine := listengine.NewEngine(repo.NewRecordStore(kv, nil), testutil.NewMockClock(),
		domain.NewRandomIDGenerator(), language.English, zap.NewNop())
	engine.Initialize(ctx)
	uc := NewInteractor(engine)

	t.Run("updates quantity", func(t *testing.T) {
		require.NoError(t, uc.Execute(ctx, &Request{ProductID: "1", Name: "Widget", Quantity: "8"}))
		assert.Equal(t, "8", testutil.StoredProducts(t, kv)[0].Quantity())
	})

	t.Run("missing id", func(t *testing.T) {
		err := uc.Execute(ctx, &Request{Name: "Widget", Quantity: "8"})
		assert.ErrorIs(t, err, domain.ErrInvalidProductID)
	})

	t.Run("blank quantity", func(t *testing.T) {
		err := uc.Execute(ctx, &Request{ProductID: "1", Name: "Widget", Quantity: " "})
		assert.ErrorIs(t, err, domain.ErrEmptyField)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := uc.Execute(ctx, &Request{ProductID: "1", Name: "GADGET", Quantity: "8"})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("unknown product", func(t *testing.T) {
		err := uc.Execute(ctx, &Request{ProductID: "3", Name: "Other", Quantity: "8"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
