package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/app/session/repo"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
	"github.com/light-bringer/procat-inventory/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	states []domain.State
}

func (r *recorder) record(s domain.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []domain.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.State(nil), r.states...)
}

func TestMonitor_Load(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)
	m := New(flags, nil, testutil.NewMockClock(), 0, nil)

	state, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, state.LoggedIn)

	require.NoError(t, flags.SetLoggedIn(ctx, true))
	state, err = m.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.LoggedIn)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, state, m.State())
}

func TestMonitor_Check(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)
	m := New(flags, nil, testutil.NewMockClock(), 0, nil)
	rec := &recorder{}
	m.OnChange(rec.record)

	m.Check(ctx)
	assert.Empty(t, rec.all(), "no change while flag is missing")

	require.NoError(t, flags.SetLoggedIn(ctx, true))
	m.Check(ctx)
	m.Check(ctx)
	require.Len(t, rec.all(), 1)
	assert.True(t, rec.all()[0].LoggedIn)

	t.Run("accepted state is not reported", func(t *testing.T) {
		require.NoError(t, flags.SetLoggedIn(ctx, false))
		m.Accept(domain.LoggedOut(testutil.Epoch))
		m.Check(ctx)
		assert.Len(t, rec.all(), 1)
	})
}

func TestMonitor_FollowsWatcher(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)

	m := New(flags, kv, testutil.NewMockClock(), 0, nil)
	rec := &recorder{}
	m.OnChange(rec.record)
	require.NoError(t, m.Start(ctx))
	defer m.Stop()

	// another process logs in
	require.NoError(t, repo.NewFlagStore(kv).SetLoggedIn(ctx, true))
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.State().LoggedIn)

	// unrelated keys are ignored
	require.NoError(t, kv.Set(ctx, "products", "[]"))

	require.NoError(t, repo.NewFlagStore(kv).SetLoggedIn(ctx, false))
	require.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, 5*time.Millisecond)
	assert.False(t, rec.all()[1].LoggedIn)
}

func TestMonitor_PollsWithoutWatcher(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)
	clk := testutil.NewMockClock()

	m := New(flags, nil, clk, time.Second, nil)
	rec := &recorder{}
	m.OnChange(rec.record)
	require.NoError(t, m.Start(ctx))
	require.Equal(t, 1, clk.TickerCount())

	require.NoError(t, flags.SetLoggedIn(ctx, true))
	clk.Advance(time.Second)
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)

	m.Stop()
	assert.Equal(t, 0, clk.TickerCount())
}

func TestMonitor_RunStopsWithContext(t *testing.T) {
	kv := kvstore.NewMemory()
	defer kv.Close()
	m := New(repo.NewFlagStore(kv), kv, testutil.NewMockClock(), 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestMonitor_StartFailsOnClosedStore(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Close())

	m := New(repo.NewFlagStore(kv), kv, testutil.NewMockClock(), 0, nil)
	assert.ErrorIs(t, m.Start(context.Background()), kvstore.ErrClosed)
}

func TestMonitor_RestartsAfterContextCancel(t *testing.T) {
	kv := kvstore.NewMemory()
	defer kv.Close()
	flags := repo.NewFlagStore(kv)
	clk := testutil.NewMockClock()

	m := New(flags, nil, clk, time.Second, nil)
	rec := &recorder{}
	m.OnChange(rec.record)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx))
	cancel()
	require.Eventually(t, func() bool { return clk.TickerCount() == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()
	assert.Equal(t, 1, clk.TickerCount())

	require.NoError(t, flags.SetLoggedIn(context.Background(), true))
	clk.Advance(time.Second)
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
}
