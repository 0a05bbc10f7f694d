package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"deskcalc/cmd/deskcalc/ui"
	"deskcalc/internal/config"
	"deskcalc/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dark       bool

	// Resolved at startup
	cfg     *config.Config
	cfgFile string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "deskcalc",
	Short: "deskcalc - keyboard-driven desk calculator",
	Long: `deskcalc is a desk calculator for the terminal.

Operations chain left to right: 2 + 3 × 4 = 20. A memory register, a
calculation history and a clipboard copy of the display are one key away.

Run without arguments to start the interactive calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .deskcalc/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&dark, "dark", true, "Use the dark palette (overrides config)")

	evalCmd.Flags().BoolVar(&showHistory, "history", false, "Also print the calculation history, newest first")
	keysCmd.Flags().BoolVar(&rawKeys, "raw", false, "Print markdown without terminal styling")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves the config file and initializes logging.
func setup(cmd *cobra.Command) error {
	cfgFile = configPath
	if cfgFile == "" {
		path, err := config.ConfigFile()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
		cfgFile = path
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dark") {
		if dark {
			cfg.UI.Theme = config.ThemeDark
		} else {
			cfg.UI.Theme = config.ThemeLight
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize(filepath.Dir(cfgFile), cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Verbose mode mirrors logs to stderr, except in the full-screen UI.
	if verbose && cmd.HasParent() {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}
	logger = logging.Get(logging.CategoryBoot)
	logger.Debug("config resolved", zap.String("path", cfgFile), zap.String("theme", cfg.UI.Theme))
	return nil
}

// categoryLogger returns the logger for a subsystem, honoring --verbose.
func categoryLogger(cmd *cobra.Command, category logging.Category) *zap.Logger {
	if verbose && cmd.HasParent() && logger != nil {
		return logger.Named(string(category))
	}
	return logging.Get(category)
}

// runInteractive starts the full-screen calculator.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := ui.RunOptions{
		Options: ui.Options{
			Dark:             cfg.UI.IsDark(),
			ShowHelp:         cfg.UI.ShowHelp,
			ActiveKeyDelay:   cfg.GetActiveKeyDelay(),
			CopyConfirmDelay: cfg.GetCopyConfirmDelay(),
			Logger:           logging.Get(logging.CategoryUI),
			EngineLogger:     logging.Get(logging.CategoryEngine),
			KeymapLogger:     logging.Get(logging.CategoryKeymap),
		},
		WatcherLogger: logging.Get(logging.CategoryConfig),
	}
	if cfg.UI.WatchConfig {
		opts.ConfigPath = cfgFile
	}

	logger.Info("starting interactive session", zap.Bool("dark", opts.Dark))
	return ui.Run(ctx, opts)
}
