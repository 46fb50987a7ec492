package services

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/list_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/update_product"
	sessiondomain "github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/login"
	"github.com/light-bringer/procat-inventory/internal/config"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
	"github.com/light-bringer/procat-inventory/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func memoryConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Store.Driver = config.DriverMemory
	return cfg
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	opts, err := Wire(ctx, memoryConfig(), kvstore.NewMemory(), testutil.NewMockClock(), nil)
	require.NoError(t, err)
	defer opts.Close()

	// 1. Log in
	state, err := opts.Login.Execute(ctx, &login.Request{Email: "clerk@example.com", Password: "stock2024!"})
	require.NoError(t, err)
	opts.Session.Accept(state)
	assert.True(t, opts.Session.State().LoggedIn)

	// 2. Create
	id, err := opts.CreateProduct.Execute(ctx, &create_product.Request{Name: "Widget", Quantity: "10"})
	require.NoError(t, err)

	_, err = opts.CreateProduct.Execute(ctx, &create_product.Request{Name: "widget", Quantity: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// 3. Update
	require.NoError(t, opts.UpdateProduct.Execute(ctx, &update_product.Request{ProductID: id, Name: "Widget", Quantity: "12"}))

	dto, err := opts.GetProduct.Execute(ctx, &get_product.Request{ProductID: id})
	require.NoError(t, err)
	assert.Equal(t, "12", dto.Quantity)

	// 4. List
	res, err := opts.ListProducts.Execute(ctx, &list_products.Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, 1, res.PageCount)

	// 5. Delete
	require.NoError(t, opts.DeleteProduct.Execute(ctx, &delete_product.Request{ProductID: id}))
	_, err = opts.GetProduct.Execute(ctx, &get_product.Request{ProductID: id})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestTwoWindowsShareOneStore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	clk := testutil.NewMockClock()

	first, err := Wire(ctx, memoryConfig(), store, clk, nil)
	require.NoError(t, err)
	defer first.Close()
	second, err := Wire(ctx, memoryConfig(), store, clk, nil)
	require.NoError(t, err)
	defer second.Poller.Stop()
	defer second.Session.Stop()

	var sessionFlips atomic.Int32
	second.Session.OnChange(func(sessiondomain.State) { sessionFlips.Add(1) })
	require.NoError(t, second.Session.Start(ctx))
	second.Poller.Start(ctx)

	t.Run("product written by one window appears in the other", func(t *testing.T) {
		_, err := first.CreateProduct.Execute(ctx, &create_product.Request{Name: "Shared", Quantity: "3"})
		require.NoError(t, err)

		clk.Advance(first.Config.GetPollInterval())
		require.Eventually(t, func() bool {
			page := second.Engine.CurrentPageSlice()
			return len(page) == 1 && page[0].Name() == "Shared"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("login in one window is observed by the other", func(t *testing.T) {
		_, err := first.Login.Execute(ctx, &login.Request{Email: "a@b.io", Password: "abcd123!"})
		require.NoError(t, err)

		require.Eventually(t, func() bool { return second.Session.State().LoggedIn }, time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(1), sessionFlips.Load())
	})
}

func TestNewServiceOptions_Drivers(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.DriverSQLite, config.DriverFile} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Store.Driver = driver
			cfg.Store.Path = filepath.Join(t.TempDir(), "inventory")

			opts, err := NewServiceOptions(ctx, cfg, nil)
			require.NoError(t, err)
			_, err = opts.Engine.Create(ctx, "Persisted", "1")
			require.NoError(t, err)
			require.NoError(t, opts.Close())

			reopened, err := NewServiceOptions(ctx, cfg, nil)
			require.NoError(t, err)
			defer reopened.Close()
			assert.Equal(t, []string{"Persisted"}, testutil.Names(reopened.Engine.Products()))
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Driver = "redis"
		_, err := NewServiceOptions(ctx, cfg, nil)
		assert.Error(t, err)
	})
}
