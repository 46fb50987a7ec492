package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/app/product/repo"
	"github.com/light-bringer/procat-inventory/internal/models/m_product"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// NewProduct builds a stored-shape product stamped at the given time.
func NewProduct(id, name, quantity string, at time.Time) domain.Product {
	return domain.ReconstructProduct(id, name, quantity, domain.FormatTimestamp(at))
}

// NumberedProducts builds n products named "Product 001".."Product n",
// one minute apart starting at Epoch.
func NumberedProducts(n int) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, NewProduct(
			fmt.Sprintf("%015d", 100000000000000+i),
			fmt.Sprintf("Product %03d", i),
			fmt.Sprint(i),
			Epoch.Add(time.Duration(i)*time.Minute),
		))
	}
	return products
}

// SeedProducts writes products to kv the way the record store does.
func SeedProducts(t *testing.T, kv kvstore.Store, products ...domain.Product) {
	t.Helper()

	err := repo.NewRecordStore(kv, zap.NewNop()).SaveAll(context.Background(), products)
	require.NoError(t, err, "failed to seed products")
}

// StoredProducts reads the collection back from kv.
func StoredProducts(t *testing.T, kv kvstore.Store) []domain.Product {
	t.Helper()

	products, err := repo.NewRecordStore(kv, zap.NewNop()).Load(context.Background())
	require.NoError(t, err, "failed to load products")
	return products
}

// StoredBlob returns the raw product blob and whether it exists.
func StoredBlob(t *testing.T, kv kvstore.Store) (string, bool) {
	t.Helper()

	blob, ok, err := kv.Get(context.Background(), m_product.StorageKey)
	require.NoError(t, err)
	return blob, ok
}

// Names returns the product names in order.
func Names(products []domain.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name())
	}
	return names
}

// AssertUniqueNames fails the test when two products share a name ignoring case.
func AssertUniqueNames(t *testing.T, products []domain.Product) {
	t.Helper()

	seen := make(map[string]string, len(products))
	for _, p := range products {
		key := strings.ToLower(p.Name())
		if prev, ok := seen[key]; ok {
			t.Fatalf("duplicate product name %q (ids %s and %s)", p.Name(), prev, p.ID())
		}
		seen[key] = p.ID()
	}
}
