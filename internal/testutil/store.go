package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// ErrInjected is returned by FlakyStore when a failure is switched on.
var ErrInjected = errors.New("testutil: injected failure")

// FlakyStore wraps a Store and fails reads or writes on demand.
type FlakyStore struct {
	kvstore.Store

	FailGet atomic.Bool
	FailSet atomic.Bool
	sets    atomic.Int64
}

// NewFlakyStore wraps an in-memory store.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Store: kvstore.NewMemory()}
}

// Get fails with ErrInjected while FailGet is set.
func (s *FlakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.FailGet.Load() {
		return "", false, ErrInjected
	}
	return s.Store.Get(ctx, key)
}

// Set fails with ErrInjected while FailSet is set.
func (s *FlakyStore) Set(ctx context.Context, key, value string) error {
	if s.FailSet.Load() {
		return ErrInjected
	}
	s.sets.Add(1)
	return s.Store.Set(ctx, key, value)
}

// Sets counts successful writes.
func (s *FlakyStore) Sets() int64 {
	return s.sets.Load()
}
