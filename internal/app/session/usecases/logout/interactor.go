package logout

import (
	"context"
	"fmt"

	"github.com/light-bringer/procat-inventory/internal/app/session/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// Interactor handles the logout use case.
type Interactor struct {
	flags contracts.FlagStore
	clock clock.Clock
}

// NewInteractor creates a new logout interactor.
func NewInteractor(flags contracts.FlagStore, clock clock.Clock) *Interactor {
	return &Interactor{
		flags: flags,
		clock: clock,
	}
}

// Execute clears the shared flag.
func (i *Interactor) Execute(ctx context.Context) (domain.State, error) {
	if err := i.flags.SetLoggedIn(ctx, false); err != nil {
		return domain.State{}, fmt.Errorf("failed to end session: %w", err)
	}
	return domain.LoggedOut(i.clock.Now()), nil
}
