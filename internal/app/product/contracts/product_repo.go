package contracts

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
)

// RecordStore persists the whole product collection as a single record.
// Writes overwrite the record; the last writer wins.
type RecordStore interface {
	// LoadAll returns the stored collection. Missing, malformed or
	// unreadable data yields an empty collection; it never fails the caller.
	LoadAll(ctx context.Context) []domain.Product

	// Load is LoadAll with storage failures surfaced. Malformed data is
	// still an empty collection, not an error.
	Load(ctx context.Context) ([]domain.Product, error)

	// SaveAll serializes products and overwrites the stored record.
	SaveAll(ctx context.Context, products []domain.Product) error
}

// ProductWriter applies mutations to the product collection. Every
// successful call is persisted before it returns.
type ProductWriter interface {
	Create(ctx context.Context, name, quantity string) (domain.Product, error)
	Update(ctx context.Context, productID, name, quantity string) (domain.Product, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, productID string) error
}
