package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/models/m_product"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

func TestRecordStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	rs := NewRecordStore(kv, zap.NewNop())

	t.Run("missing key loads empty", func(t *testing.T) {
		got := rs.LoadAll(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("saved collection loads back in order", func(t *testing.T) {
		want := []domain.Product{
			domain.ReconstructProduct("2", "Banana", "4", "2024-01-02T00:00:00.000Z"),
			domain.ReconstructProduct("1", "Apple", "3", "2024-01-01T00:00:00.000Z"),
		}
		require.NoError(t, rs.SaveAll(ctx, want))
		assert.Equal(t, want, rs.LoadAll(ctx))
	})

	t.Run("persisted layout", func(t *testing.T) {
		require.NoError(t, rs.SaveAll(ctx, []domain.Product{
			domain.ReconstructProduct("1", "Apple", "3", "t"),
		}))
		blob, ok, err := kv.Get(ctx, m_product.StorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"productId":"1","productName":"Apple","dateTime":"t","quantity":"3"}]`, blob)
	})

	t.Run("empty collection persists as empty array", func(t *testing.T) {
		require.NoError(t, rs.SaveAll(ctx, nil))
		blob, _, err := kv.Get(ctx, m_product.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, "[]", blob)
	})
}

func TestRecordStore_MalformedData(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()

	core, logs := observer.New(zap.WarnLevel)
	rs := NewRecordStore(kv, zap.New(core))

	for _, blob := range []string{"{not json", `{"productId":"1"}`, `[1,2,3]`} {
		require.NoError(t, kv.Set(ctx, m_product.StorageKey, blob))

		products, err := rs.Load(ctx)
		require.NoError(t, err, blob)
		assert.Empty(t, products, blob)
	}
	assert.Equal(t, 3, logs.FilterMessage("malformed product data, treating as empty").Len())
}

func TestRecordStore_StorageFailure(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	rs := NewRecordStore(kv, nil)
	require.NoError(t, kv.Close())

	_, err := rs.Load(ctx)
	assert.ErrorIs(t, err, kvstore.ErrClosed)
	assert.Empty(t, rs.LoadAll(ctx), "LoadAll never fails the caller")

	err = rs.SaveAll(ctx, []domain.Product{domain.ReconstructProduct("1", "a", "1", "t")})
	assert.ErrorIs(t, err, kvstore.ErrClosed)
}
