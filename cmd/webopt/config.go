package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/absfs/webopt"
)

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".webopt")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WEBOPT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match WEBOPT_*

	defaults := webopt.DefaultConfig()
	viper.SetDefault("dir", defaults.Dir)
	viper.SetDefault("format", string(defaults.Algorithm))
	viper.SetDefault("engine", string(defaults.Engine))
	viper.SetDefault("workers", defaults.Workers)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig resolves the effective configuration (defaults < config file <
// env < flags) and the entries to process.
func loadConfig(args []string) (*webopt.Config, []webopt.Entry, error) {
	cfg := webopt.DefaultConfig()
	cfg.Dir = viper.GetString("dir")
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	cfg.Files = viper.GetStringSlice("files")
	cfg.Scan = viper.GetBool("scan")
	cfg.IncludeOpaque = viper.GetBool("include_opaque")
	cfg.Engine = webopt.EngineName(viper.GetString("engine"))
	cfg.Workers = viper.GetInt("workers")
	cfg.Manifest = viper.GetString("manifest")

	algo, err := webopt.ParseAlgorithm(viper.GetString("format"))
	if err != nil {
		return nil, nil, err
	}
	cfg.Algorithm = algo

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%s does not exist", cfg.Dir)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", cfg.Dir)
	}

	entries, err := selectEntries(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, entries, nil
}

func selectEntries(cfg *webopt.Config) ([]webopt.Entry, error) {
	switch {
	case cfg.Scan:
		return webopt.Discover(os.DirFS(cfg.Dir), webopt.DiscoverOptions{IncludeOpaque: cfg.IncludeOpaque})
	case len(cfg.Files) > 0:
		entries := make([]webopt.Entry, 0, len(cfg.Files))
		for _, arg := range cfg.Files {
			entry, err := webopt.ParseEntry(arg)
			if err != nil {
				return nil, fmt.Errorf("file %q: %w", arg, err)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	default:
		return webopt.DefaultEntries(), nil
	}
}

// newLogger builds a console logger on stderr so it never mixes with the
// report on stdout.
func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Development = false
	zcfg.DisableStacktrace = true
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("webopt").Sugar(), nil
}
