// mathdata is the CLI for loading, validating and persisting math
// word-problem datasets.
//
// Usage:
//
//	mathdata load [--split=<split>] [<family>...]
//	mathdata validate [<family>...]
//	mathdata save --out=<dir> [--format=jsonl|sqlite]
//	mathdata sample [--dir=<dir>]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/config"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	dataDir    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "mathdata",
	Short: "Load, validate and persist math word-problem datasets",
	Long: "mathdata reads GSM8K, MathQA, MAWPS and custom math word-problem datasets\n" +
		"from their native formats, normalizes them onto one canonical schema,\n" +
		"runs quality checks, and writes them back out for analysis tooling.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the configured data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.Version = version
}

// setup resolves configuration, wires logging, and builds the loader.
func setup() (*config.Config, *datasets.Loader, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	outputs := []logging.Output{
		logging.NewConsoleOutput(true, logging.WithColor(cfg.Logging.Color)),
	}
	if cfg.Logging.File != "" {
		fileOut, err := logging.NewFileOutput(cfg.Logging.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		outputs = append(outputs, fileOut)
	}
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(cfg.Logging.Level),
		Outputs:  outputs,
	}))

	loader := datasets.NewLoader(loaderConfig(cfg))
	return cfg, loader, nil
}

// loaderConfig maps the file/env configuration onto the loader's options.
func loaderConfig(cfg *config.Config) datasets.LoaderConfig {
	lc := datasets.LoaderConfig{
		DataDir:         cfg.Data.Dir,
		AllowDownload:   cfg.Data.AllowDownload,
		AllowSamples:    cfg.Data.AllowSamples,
		DownloadTimeout: cfg.Data.DownloadTimeout,
	}
	if lc.DownloadTimeout == 0 {
		lc.DownloadTimeout = 60 * time.Second
	}
	for name, path := range cfg.Data.FamilyPaths {
		family, err := datasets.ParseFamily(name)
		if err != nil {
			continue // validated at config load
		}
		if lc.FamilyPaths == nil {
			lc.FamilyPaths = make(map[datasets.Family]string)
		}
		lc.FamilyPaths[family] = path
	}
	return lc
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
