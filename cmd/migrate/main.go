package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/import_products"
	"github.com/light-bringer/procat-inventory/internal/config"
	"github.com/light-bringer/procat-inventory/internal/logging"
	"github.com/light-bringer/procat-inventory/internal/services"
)

var (
	configPath  string
	storeDriver string
	storePath   string
	replace     bool
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "migrate FILE",
	Short: "Import products from a browser localStorage export",
	Long: `Reads a JSON export of the browser app's storage and writes its products
into the configured store. FILE may be the value of the "products" key (a
JSON array) or the whole localStorage object; use - to read stdin.

Records with blank fields, a quantity that is not a whole number, or a name
or id already present are skipped and reported.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMigrate,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&storeDriver, "store", "", "store driver: sqlite or file")
	rootCmd.Flags().StringVar(&storePath, "store-path", "", "database file (sqlite) or directory (file)")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "replace the stored products instead of appending")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, write nothing")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Migration failed:", err)
		stop()
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Driver = storeDriver
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path = storePath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 2. Read the export
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	records, err := parseExport(data)
	if err != nil {
		return err
	}

	// 3. Import through the record store
	opts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer opts.Close()

	resp, err := opts.ImportProducts.Execute(ctx, &import_products.Request{
		Records: records,
		Replace: replace,
		DryRun:  dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to import products: %w", err)
	}

	for _, s := range resp.Skipped {
		fmt.Fprintf(out, "skipped #%d %q (id %s): %v\n", s.Index, s.Record.Name, s.Record.ProductID, s.Reason)
	}
	logger.Info("import finished",
		zap.Int("imported", len(resp.Imported)),
		zap.Int("skipped", len(resp.Skipped)),
		zap.Int("total", resp.Total),
		zap.Bool("dry_run", dryRun),
	)

	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Fprintf(out, "%s %d of %d products (%d skipped); store now holds %d\n",
		verb, len(resp.Imported), len(records), len(resp.Skipped), resp.Total)
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return data, nil
}
