package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alanpramil7/ytstudio/internal/auth"
	"github.com/alanpramil7/ytstudio/internal/config"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/demo"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=..."
var Version = "dev"

var (
	verbose    bool
	rawOutput  bool
	outputFlag string

	logger = zap.NewNop()
	cfg    = config.DefaultConfig()
	paths  config.Paths

	// newServices builds the services a command talks to. Live or demo is
	// decided once, from the loaded config.
	newServices = loadServices
	now         = time.Now
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yts",
	Short: "Manage and analyze your YouTube channel from the terminal",
	Long: `yts is a command-line client for your YouTube channel.

Features:
  • List, inspect and bulk-edit your uploads
  • Query any YouTube Analytics metric or dimension
  • Moderate comments interactively
  • SEO checks and exports (table, JSON, CSV)

Examples:
  yts init
  yts login
  yts videos list --sort views
  yts analytics query -m views,likes -d day --days 7
  yts comments moderate`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command. Errors are returned to main, which turns
// them into a message with ErrorMessage.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "Show exact numbers instead of 1.5K / 2.5M")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format: table, json, csv (default from config)")
}

// setup builds the logger and loads the configuration before any command runs
func setup(cmd *cobra.Command, args []string) error {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	paths = config.PathsFor(dir)

	loaded, err := config.Load(paths.Config)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Debug("configuration loaded",
		zap.String("dir", paths.Dir),
		zap.String("output", cfg.Output),
		zap.Bool("demo", cfg.Demo))
	return nil
}

func authManager() *auth.Manager {
	return auth.NewManager(paths, cfg.OAuthPort, logger)
}

func loadServices(ctx context.Context) (*services.Set, error) {
	if cfg.Demo {
		logger.Debug("serving demo data")
		return demo.New(now()), nil
	}

	httpClient, err := authManager().HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	client, err := yt.NewClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	return services.NewSet(client), nil
}

// outputOptions resolves --output and --raw against the config defaults
func outputOptions() (format.Options, error) {
	name := cfg.Output
	if outputFlag != "" {
		name = outputFlag
	}
	f, err := format.ParseFormat(name)
	if err != nil {
		return format.Options{}, err
	}
	return format.Options{
		Format:   f,
		Raw:      rawOutput || cfg.Raw,
		Currency: cfg.Currency,
	}, nil
}

func days(flag int) int {
	if flag > 0 {
		return flag
	}
	return cfg.Days
}
