package logout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-inventory/internal/app/session/repo"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
	"github.com/light-bringer/procat-inventory/internal/testutil"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)
	require.NoError(t, flags.SetLoggedIn(ctx, true))

	state, err := NewInteractor(flags, testutil.NewMockClock()).Execute(ctx)
	require.NoError(t, err)
	assert.False(t, state.LoggedIn)
	assert.Empty(t, state.ID)

	value, ok, err := kv.Get(ctx, "isLoggedIn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)
}
