package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	sessiondomain "github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/services"
)

// DepsFrom picks the screens' dependencies out of the service container.
func DepsFrom(opts *services.ServiceOptions) *Deps {
	return &Deps{
		Engine:        opts.Engine,
		Session:       opts.Session,
		Logger:        opts.Logger,
		CreateProduct: opts.CreateProduct,
		UpdateProduct: opts.UpdateProduct,
		DeleteProduct: opts.DeleteProduct,
		GetProduct:    opts.GetProduct,
		ListProducts:  opts.ListProducts,
		Login:         opts.Login,
		Logout:        opts.Logout,
	}
}

// Run shows the terminal UI until the user quits or ctx is done. The store
// poller and the session monitor run alongside the program and forward
// changes made by other processes into it.
func Run(ctx context.Context, opts *services.ServiceOptions, programOpts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(New(ctx, DepsFrom(opts)), programOpts...)

	opts.Poller.OnChange(func(cs domain.ChangeSet) {
		p.Send(ProductsChangedMsg{Changes: cs})
	})
	opts.Session.OnChange(func(s sessiondomain.State) {
		p.Send(SessionChangedMsg{State: s})
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return opts.Poller.Run(gctx)
	})
	g.Go(func() error {
		return opts.Session.Run(gctx)
	})
	g.Go(func() error {
		// Quitting the program stops the poller and the monitor.
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
	return g.Wait()
}
