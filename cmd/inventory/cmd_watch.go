package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	sessiondomain "github.com/light-bringer/procat-inventory/internal/app/session/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print product and session changes made by other instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer opts.Close()

		var mu sync.Mutex
		out := cmd.OutOrStdout()

		opts.Poller.OnChange(func(cs domain.ChangeSet) {
			mu.Lock()
			defer mu.Unlock()
			printChangeSet(out, cs)
		})
		opts.Session.OnChange(func(s sessiondomain.State) {
			mu.Lock()
			defer mu.Unlock()
			if s.LoggedIn {
				fmt.Fprintln(out, "* logged in")
			} else {
				fmt.Fprintln(out, "* logged out")
			}
		})

		fmt.Fprintf(out, "Watching %d products (ctrl+c to stop)\n", opts.Engine.TotalCount())

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return opts.Poller.Run(gctx)
		})
		g.Go(func() error {
			return opts.Session.Run(gctx)
		})
		return g.Wait()
	},
}

func printChangeSet(out io.Writer, cs domain.ChangeSet) {
	for _, p := range cs.Added {
		fmt.Fprintf(out, "+ %s %q qty=%s\n", p.ID(), p.Name(), p.Quantity())
	}
	for _, p := range cs.Updated {
		fmt.Fprintf(out, "~ %s %q qty=%s\n", p.ID(), p.Name(), p.Quantity())
	}
	for _, p := range cs.Removed {
		fmt.Fprintf(out, "- %s %q\n", p.ID(), p.Name())
	}
}
