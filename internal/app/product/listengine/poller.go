package listengine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// DefaultPollInterval is how often the store is checked for external writes.
const DefaultPollInterval = 500 * time.Millisecond

// Poller periodically re-reads the store and reconciles the engine with
// whatever another writer left there.
type Poller struct {
	engine   *Engine
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	onChange func(domain.ChangeSet)
	running  bool
	ctxDone  <-chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPoller creates a stopped poller. A non-positive interval means
// DefaultPollInterval.
func NewPoller(engine *Engine, clk clock.Clock, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		engine:   engine,
		clock:    clk,
		interval: interval,
		logger:   logger.With(zap.String("component", "poller")),
	}
}

// OnChange registers fn to run, on the poller goroutine, after every
// reconciliation that changed the collection.
func (p *Poller) OnChange(fn func(domain.ChangeSet)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Start begins polling until Stop is called or ctx is done. Starting a
// running poller does nothing; a poller whose context ended may be started
// again.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running && !closed(p.ctxDone) {
		return
	}
	p.running = true
	p.ctxDone = ctx.Done()
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	// The ticker is created here so a mock clock sees it before Start returns.
	ticker := p.clock.NewTicker(p.interval)
	go p.run(ctx, ticker, p.stopCh, p.doneCh)

	p.logger.Debug("started", zap.Duration("interval", p.interval))
}

// Stop halts polling and waits for the loop to exit. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	close(stopCh)
	<-doneCh
	p.logger.Debug("stopped")
}

// Run polls until ctx is done. It suits errgroup-style supervision.
func (p *Poller) Run(ctx context.Context) error {
	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
	return nil
}

// Tick performs one poll. Load failures are logged and skipped.
func (p *Poller) Tick(ctx context.Context) {
	cs, changed, err := p.engine.Refresh(ctx)
	if err != nil {
		p.logger.Warn("failed to poll store", zap.Error(err))
		return
	}
	if !changed {
		return
	}

	p.logger.Info("reconciled external change",
		zap.Int("added", len(cs.Added)),
		zap.Int("removed", len(cs.Removed)),
		zap.Int("updated", len(cs.Updated)),
	)

	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn(cs)
	}
}

func (p *Poller) run(ctx context.Context, ticker *clock.Ticker, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// closed reports whether ch has been closed. A nil channel is never closed.
func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
