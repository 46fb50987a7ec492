package contracts

import "context"

// FlagStore persists the shared login flag.
type FlagStore interface {
	// IsLoggedIn reads the flag. A missing flag means logged out.
	IsLoggedIn(ctx context.Context) (bool, error)
	// SetLoggedIn overwrites the flag.
	SetLoggedIn(ctx context.Context, loggedIn bool) error
}
