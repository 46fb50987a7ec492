package main

import (
	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-inventory/internal/transport/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI (default)",
	Args:  cobra.NoArgs,
	RunE:  runTerminalUI,
}

func runTerminalUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer opts.Close()

	return tui.Run(ctx, opts)
}
