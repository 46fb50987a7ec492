package login

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/procat-inventory/internal/app/session/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// Request contains the submitted login form.
type Request struct {
	Email    string
	Password string
}

// Interactor handles the login use case.
type Interactor struct {
	flags contracts.FlagStore
	clock clock.Clock
}

// NewInteractor creates a new login interactor.
func NewInteractor(flags contracts.FlagStore, clock clock.Clock) *Interactor {
	return &Interactor{
		flags: flags,
		clock: clock,
	}
}

// Execute validates the credentials and establishes the session.
func (i *Interactor) Execute(ctx context.Context, req *Request) (domain.State, error) {
	// 1. Validate request
	creds := domain.Credentials{Email: req.Email, Password: req.Password}
	if err := creds.Validate(); err != nil {
		return domain.State{}, err
	}

	// 2. Persist the shared flag
	if err := i.flags.SetLoggedIn(ctx, true); err != nil {
		return domain.State{}, fmt.Errorf("failed to establish session: %w", err)
	}

	return domain.LoggedInAs(uuid.NewString(), i.clock.Now()), nil
}
