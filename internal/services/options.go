package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/list_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/repo"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/import_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/update_product"
	"github.com/light-bringer/procat-inventory/internal/app/session/monitor"
	sessionrepo "github.com/light-bringer/procat-inventory/internal/app/session/repo"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/login"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/logout"
	"github.com/light-bringer/procat-inventory/internal/config"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore/filekv"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore/sqlitekv"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock
	Store  kvstore.Store

	RecordStore contracts.RecordStore
	Engine      *listengine.Engine
	Poller      *listengine.Poller
	Session     *monitor.Monitor

	CreateProduct  *create_product.Interactor
	UpdateProduct  *update_product.Interactor
	DeleteProduct  *delete_product.Interactor
	ImportProducts *import_products.Interactor
	GetProduct     *get_product.Query
	ListProducts   *list_products.Query
	Login          *login.Interactor
	Logout         *logout.Interactor
}

// OpenStore opens the key/value backend named by the configuration.
func OpenStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return sqlitekv.NewStore(cfg.StorePath())
	case config.DriverFile:
		return filekv.NewStore(cfg.StorePath())
	case config.DriverMemory:
		return kvstore.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
}

// NewServiceOptions opens the configured store and wires up all application
// dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	opts, err := Wire(ctx, cfg, store, clock.NewRealClock(), logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return opts, nil
}

// Wire builds every component over an already open store. The returned
// options own store and close it in Close.
func Wire(
	ctx context.Context,
	cfg *config.Config,
	store kvstore.Store,
	clk clock.Clock,
	logger *zap.Logger,
) (*ServiceOptions, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Create repositories
	recordStore := repo.NewRecordStore(store, logger)
	flagStore := sessionrepo.NewFlagStore(store)

	// 2. Create the list engine and its poller
	engine := listengine.NewEngine(recordStore, clk, domain.NewRandomIDGenerator(), cfg.LanguageTag(), logger)
	engine.Initialize(ctx)
	if err := engine.SetPageSize(cfg.List.PageSize); err != nil {
		return nil, fmt.Errorf("failed to apply page size: %w", err)
	}
	poller := listengine.NewPoller(engine, clk, cfg.GetPollInterval(), logger)

	// 3. Create the session monitor (push when the store supports it)
	watcher, _ := store.(kvstore.Watcher)
	session := monitor.New(flagStore, watcher, clk, cfg.GetSessionPollInterval(), logger)
	if _, err := session.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	// 4. Create command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(engine, domain.NewRandomIDGenerator(), clk)
	updateProductUseCase := update_product.NewInteractor(engine)
	deleteProductUseCase := delete_product.NewInteractor(engine)
	importProductsUseCase := import_products.NewInteractor(recordStore, domain.NewRandomIDGenerator(), clk)
	loginUseCase := login.NewInteractor(flagStore, clk)
	logoutUseCase := logout.NewInteractor(flagStore, clk)

	// 5. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(engine)
	listProductsQuery := list_products.NewQuery(engine)

	return &ServiceOptions{
		Config:         cfg,
		Logger:         logger,
		Clock:          clk,
		Store:          store,
		RecordStore:    recordStore,
		Engine:         engine,
		Poller:         poller,
		Session:        session,
		CreateProduct:  createProductUseCase,
		UpdateProduct:  updateProductUseCase,
		DeleteProduct:  deleteProductUseCase,
		ImportProducts: importProductsUseCase,
		GetProduct:     getProductQuery,
		ListProducts:   listProductsQuery,
		Login:          loginUseCase,
		Logout:         logoutUseCase,
	}, nil
}

// Close stops background work and closes all resources.
func (s *ServiceOptions) Close() error {
	s.Poller.Stop()
	s.Session.Stop()

	var errs []error
	if s.Store != nil {
		errs = append(errs, s.Store.Close())
	}
	if s.Logger != nil {
		// Sync returns EINVAL for stderr on some platforms.
		_ = s.Logger.Sync()
	}
	return errors.Join(errs...)
}
