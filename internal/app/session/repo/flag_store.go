package repo

import (
	"context"
	"fmt"

	"github.com/light-bringer/procat-inventory/internal/app/session/contracts"
	"github.com/light-bringer/procat-inventory/internal/models/m_session"
	"github.com/light-bringer/procat-inventory/internal/pkg/kvstore"
)

// FlagStore implements contracts.FlagStore on a kvstore.Store.
type FlagStore struct {
	store kvstore.Store
}

// NewFlagStore creates a new FlagStore.
func NewFlagStore(store kvstore.Store) contracts.FlagStore {
	return &FlagStore{
		store: store,
	}
}

// IsLoggedIn reads the flag.
func (r *FlagStore) IsLoggedIn(ctx context.Context) (bool, error) {
	value, ok, err := r.store.Get(ctx, m_session.StorageKey)
	if err != nil {
		return false, fmt.Errorf("failed to read session flag: %w", err)
	}
	return m_session.Decode(value, ok), nil
}

// SetLoggedIn writes the flag.
func (r *FlagStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	if err := r.store.Set(ctx, m_session.StorageKey, m_session.Encode(loggedIn)); err != nil {
		return fmt.Errorf("failed to write session flag: %w", err)
	}
	return nil
}
