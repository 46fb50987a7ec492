package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/models/m_product"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// RecordStore implements contracts.RecordStore on a kvstore.Store, keeping
// the collection as one JSON array under m_product.StorageKey.
type RecordStore struct {
	store  kvstore.Store
	model  *m_product.Model
	logger *zap.Logger
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(store kvstore.Store, logger *zap.Logger) contracts.RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{
		store:  store,
		model:  m_product.NewModel(),
		logger: logger.With(zap.String("component", "record_store")),
	}
}

// LoadAll returns the stored collection, or an empty one on any failure.
func (r *RecordStore) LoadAll(ctx context.Context) []domain.Product {
	products, err := r.Load(ctx)
	if err != nil {
		r.logger.Warn("failed to load products, using empty collection", zap.Error(err))
		return []domain.Product{}
	}
	return products
}

// Load reads and decodes the collection.
func (r *RecordStore) Load(ctx context.Context) ([]domain.Product, error) {
	blob, ok, err := r.store.Get(ctx, m_product.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	if !ok {
		return []domain.Product{}, nil
	}

	rows, err := r.model.Decode(blob)
	if err != nil {
		r.logger.Warn("malformed product data, treating as empty",
			zap.Int("bytes", len(blob)),
			zap.Error(err),
		)
		return []domain.Product{}, nil
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, dataToDomain(row))
	}
	return products, nil
}

// SaveAll overwrites the stored collection.
func (r *RecordStore) SaveAll(ctx context.Context, products []domain.Product) error {
	rows := make([]m_product.Data, 0, len(products))
	for _, p := range products {
		rows = append(rows, domainToData(p))
	}

	blob, err := r.model.Encode(rows)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, m_product.StorageKey, blob); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

func dataToDomain(d m_product.Data) domain.Product {
	return domain.ReconstructProduct(d.ProductID, d.ProductName, d.Quantity, d.DateTime)
}

func domainToData(p domain.Product) m_product.Data {
	return m_product.Data{
		ProductID:   p.ID(),
		ProductName: p.Name(),
		DateTime:    p.DateTime(),
		Quantity:    p.Quantity(),
	}
}
