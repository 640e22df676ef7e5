package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/absfs/webopt"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [DIR]",
	Short: "Check that every artifact decompresses to its minified source",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

var reportCmd = &cobra.Command{
	Use:   "report MANIFEST",
	Short: "Print the text report of a saved YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		summary, err := webopt.ReadManifest(f)
		if err != nil {
			return err
		}
		return webopt.WriteText(cmd.OutOrStdout(), summary)
	},
}

func runVerify(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, entries, err := loadConfig(args)
	if err != nil {
		return err
	}
	pipeline, err := webopt.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fsys := webopt.DirFS(cfg.Dir)
	out := cmd.OutOrStdout()
	var bad int
	for _, entry := range entries {
		artifact := webopt.ArtifactName(entry.Name, cfg.Algorithm)
		err := webopt.Verify(fsys, pipeline, entry, artifact)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✓ %s\n", artifact)
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(out, "⚠ Skipping %s (not found)\n", artifact)
		default:
			bad++
			fmt.Fprintf(out, "✗ %v\n", err)
			logger.Errorw("verification failed", "file", entry.Name, "artifact", artifact, "error", err)
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d artifact(s) failed verification", bad)
	}
	return nil
}
