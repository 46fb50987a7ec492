package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, ok, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "products", "[]"))
	require.NoError(t, store.Set(ctx, "products", `[{"productId":"1"}]`))

	v, ok, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"productId":"1"}]`, v)

	require.NoError(t, store.Delete(ctx, "products"))
	_, ok, err = store.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SharedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.db")

	first, err := NewStore(path)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewStore(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Set(ctx, "isLoggedIn", "true"))

	v, ok, err := second.Get(ctx, "isLoggedIn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v, "a second handle sees writes from the first")
	assert.Equal(t, path, second.Path())
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "products", "[]"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.ErrorIs(t, store.Set(ctx, "", "x"), kvstore.ErrInvalidKey)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	_, _, err := store.Get(ctx, "products")
	assert.ErrorIs(t, err, kvstore.ErrClosed)
}
