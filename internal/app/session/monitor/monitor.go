// Package monitor follows the shared login flag so a process notices when
// another process logs in or out.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/session/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/models/m_session"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// DefaultInterval is the polling interval used when the store cannot push changes.
const DefaultInterval = time.Second

// Monitor tracks the session State. Stores implementing kvstore.Watcher are
// followed through their change events; other stores are polled.
type Monitor struct {
	flags    contracts.FlagStore
	watcher  kvstore.Watcher
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	state    domain.State
	onChange func(domain.State)
	running  bool
	cancel   context.CancelFunc
	runDone  <-chan struct{}
	doneCh   chan struct{}
}

// New creates a stopped monitor. watcher may be nil.
func New(
	flags contracts.FlagStore,
	watcher kvstore.Watcher,
	clk clock.Clock,
	interval time.Duration,
	logger *zap.Logger,
) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		flags:    flags,
		watcher:  watcher,
		clock:    clk,
		interval: interval,
		logger:   logger.With(zap.String("component", "session_monitor")),
		state:    domain.LoggedOut(clk.Now()),
	}
}

// Load reads the flag once and makes it the current state without
// notifying. Call it at startup.
func (m *Monitor) Load(ctx context.Context) (domain.State, error) {
	loggedIn, err := m.flags.IsLoggedIn(ctx)
	if err != nil {
		return domain.State{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.stateFor(loggedIn)
	return m.state, nil
}

// State returns the last observed state.
func (m *Monitor) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Accept records a state this process produced itself (after its own login
// or logout) so the matching flag write is not reported back as a change.
func (m *Monitor) Accept(s domain.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// OnChange registers fn to run on the monitor goroutine whenever the
// observed login state flips.
func (m *Monitor) OnChange(fn func(domain.State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Check reads the flag and reports a change when it disagrees with the
// current state.
func (m *Monitor) Check(ctx context.Context) {
	loggedIn, err := m.flags.IsLoggedIn(ctx)
	if err != nil {
		m.logger.Warn("failed to read session flag", zap.Error(err))
		return
	}

	m.mu.Lock()
	if loggedIn == m.state.LoggedIn {
		m.mu.Unlock()
		return
	}
	m.state = m.stateFor(loggedIn)
	state, fn := m.state, m.onChange
	m.mu.Unlock()

	m.logger.Info("session changed elsewhere", zap.Bool("logged_in", loggedIn))
	if fn != nil {
		fn(state)
	}
}

// Start begins following the flag until Stop is called or ctx is done. A
// monitor whose context ended may be started again.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		select {
		case <-m.runDone:
			// The previous run ended with its context; start over.
			m.cancel()
		default:
			return nil
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	doneCh := make(chan struct{})

	if m.watcher != nil {
		changes, err := m.watcher.Watch(runCtx)
		if err != nil {
			cancel()
			return err
		}
		go m.follow(runCtx, changes, doneCh)
	} else {
		ticker := m.clock.NewTicker(m.interval)
		go m.poll(runCtx, ticker, doneCh)
	}

	m.running = true
	m.cancel = cancel
	m.runDone = runCtx.Done()
	m.doneCh = doneCh
	return nil
}

// Stop halts the monitor and waits for its goroutine to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel, doneCh := m.cancel, m.doneCh
	m.mu.Unlock()

	cancel()
	<-doneCh
}

// Run follows the flag until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	m.Stop()
	return nil
}

func (m *Monitor) follow(ctx context.Context, changes <-chan kvstore.Change, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if change.Key == m_session.StorageKey {
				m.Check(ctx)
			}
		}
	}
}

func (m *Monitor) poll(ctx context.Context, ticker *clock.Ticker, doneCh chan struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// stateFor builds the state for an observed flag value. Callers hold mu.
func (m *Monitor) stateFor(loggedIn bool) domain.State {
	now := m.clock.Now()
	if !loggedIn {
		return domain.LoggedOut(now)
	}
	if m.state.LoggedIn {
		return m.state
	}
	return domain.LoggedInAs(uuid.NewString(), now)
}
