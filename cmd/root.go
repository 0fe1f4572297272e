package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/catalog"
	"github.com/arcanaland/holocron/internal/config"
	"github.com/arcanaland/holocron/internal/logger"
)

var (
	// cfg and log are set up before any subcommand runs
	cfg *config.Config
	log = logger.Nop()

	configFile string
	logLevel   string
	logFormat  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "holocron",
	Short: "Search and browse Star Wars: Unlimited cards",
	Long: `Holocron is a command-line card browser for Star Wars: Unlimited.
It keeps a local copy of the card database and searches it either by
relevance (free text ranked by where the words match) or with a structured
query language such as "type = unit and cost <= 3".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/holocron/config.toml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")
}

// setup loads the configuration and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigFilePath(configFile)
	}

	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Flags take precedence over the config file
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	log, err = logger.New(level, format)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}

	log.Debug("configuration loaded",
		zap.String("config", config.GetConfigFilePath()),
		zap.String("catalog", cfg.CatalogPath()))
	return nil
}

// loadCatalog reads the configured catalog
func loadCatalog() ([]*card.Card, error) {
	cards, err := catalog.Load(cfg.CatalogPath())
	if err != nil {
		return nil, fmt.Errorf("%w (run 'holocron catalog download' first)", err)
	}
	log.Debug("catalog loaded", zap.Int("cards", len(cards)))
	return cards, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() { _ = log.Sync() }()
	return RootCmd.ExecuteContext(ctx)
}
