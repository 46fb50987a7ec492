package kvstore

import (
	"context"
	"sync"
)

const watchBuffer = 16

// Memory is an in-process Store. Watchers observe every Set and Delete made
// through the same instance, which is how several in-process views share a
// store in tests and in the single-binary TUI.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	subs   map[chan Change]struct{}
	closed bool
	done   chan struct{}
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]string),
		subs: make(map[chan Change]struct{}),
		done: make(chan struct{}),
	}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set overwrites the value stored under key and notifies watchers.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	m.notifyLocked(key)
	return nil
}

// Delete removes key and notifies watchers if it was present.
func (m *Memory) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.data[key]; !ok {
		return nil
	}
	delete(m.data, key)
	m.notifyLocked(key)
	return nil
}

// Watch subscribes to changes made through this instance.
func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	ch := make(chan Change, watchBuffer)
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-m.done:
		}
		m.unsubscribe(ch)
	}()

	return ch, nil
}

// Close closes every watch channel. Further operations return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	return nil
}

func (m *Memory) unsubscribe(ch chan Change) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[ch]; ok {
		delete(m.subs, ch)
		close(ch)
	}
}

// notifyLocked never blocks; a full subscriber misses the change.
func (m *Memory) notifyLocked(key string) {
	for ch := range m.subs {
		select {
		case ch <- Change{Key: key}:
		default:
		}
	}
}
