package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/config"
	"github.com/light-bringer/procat-inventory/internal/logging"
	"github.com/light-bringer/procat-inventory/internal/services"
)

var (
	configPath  string
	storeDriver string
	storePath   string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Local product inventory manager",
	Long: `inventory keeps a list of products (name, quantity, timestamp) in a local
store and lets you add, search, sort, page through, edit and delete them.

Run without arguments to start the terminal UI. Several instances may share
one store; each notices changes made by the others.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		// The terminal UI owns the screen, so it only logs to a file.
		if isTerminalUI(cmd) {
			logger, err = logging.ForTerminalUI(cfg.Logging)
		} else {
			logger, err = logging.New(cfg.Logging)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTerminalUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "store driver: sqlite, file or memory")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "database file (sqlite) or directory (file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		tuiCmd,
		addCmd,
		listCmd,
		updateCmd,
		deleteCmd,
		loginCmd,
		logoutCmd,
		watchCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		c.Store.Driver = storeDriver
	}
	if flags.Changed("store-path") {
		c.Store.Path = storePath
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func isTerminalUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// openServices wires the application over the configured store.
func openServices(ctx context.Context) (*services.ServiceOptions, error) {
	opts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return opts, nil
}
