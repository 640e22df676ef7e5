package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/absfs/webopt"
)

var (
	cfgFile  string
	logLevel string

	// version is the application version, set via ldflags.
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "webopt [DIR]",
	Short: "Minify and compress static web assets",
	Long: `webopt minifies HTML, CSS and JavaScript files, compresses them at the
maximum level of the chosen format, writes the artifacts next to the sources
and reports how much each stage saved.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOptimize,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.webopt.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	bindSelectionFlags(rootCmd)
	bindSelectionFlags(verifyCmd)

	rootCmd.Flags().IntP("workers", "w", 1, "files processed concurrently")
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	rootCmd.Flags().StringP("manifest", "m", "", "also write a YAML manifest to this path")
	viper.BindPFlag("manifest", rootCmd.Flags().Lookup("manifest"))

	rootCmd.AddCommand(verifyCmd, reportCmd)
}

// bindSelectionFlags registers the flags shared by every command that
// selects and processes files.
func bindSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("file", "f", nil, "file to process, as name or name=kind (repeatable)")
	cmd.Flags().Bool("scan", false, "discover assets under DIR instead of using the default list")
	cmd.Flags().Bool("include-opaque", false, "with --scan, also compress files that have no minifier")
	cmd.Flags().StringP("format", "a", string(webopt.AlgorithmGzip), "compression format: gzip, brotli, zstd, lz4, snappy")
	cmd.Flags().String("engine", string(webopt.EnginePattern), "minification engine: pattern or parser")

	// Both commands share viper keys, so bind lazily to the command that runs.
	prev := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		for key, flag := range map[string]string{
			"files":          "file",
			"scan":           "scan",
			"include_opaque": "include-opaque",
			"format":         "format",
			"engine":         "engine",
		} {
			if err := viper.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
				return err
			}
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

func runOptimize(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, entries, err := loadConfig(args)
	if err != nil {
		return err
	}

	batch, err := webopt.NewBatch(webopt.DirFS(cfg.Dir), cfg, logger.Desugar())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infow("optimizing assets",
		"dir", cfg.Dir,
		"files", len(entries),
		"format", cfg.Algorithm,
		"engine", cfg.Engine,
		"workers", cfg.Workers,
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Web Asset Optimization ===")
	fmt.Fprintln(out)

	summary := batch.Run(ctx, entries)
	if err := webopt.WriteText(out, summary); err != nil {
		return err
	}

	if cfg.Manifest != "" {
		if err := writeManifest(cfg.Manifest, summary); err != nil {
			return err
		}
		logger.Infow("manifest written", "path", cfg.Manifest)
	}

	logger.Infow("done",
		"processed", summary.Processed(),
		"skipped", summary.Skipped(),
		"failed", summary.Failed(),
		"saved", summary.Total.Saved(),
	)
	return nil
}

func writeManifest(path string, summary *webopt.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := webopt.WriteYAML(f, summary); err != nil {
		f.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	return f.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
