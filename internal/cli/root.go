// Package cli implements the command-line interface for the phetrack
// dataset builder.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phetrack/pipeline/config"
	"github.com/phetrack/pipeline/internal/logger"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands
	debug bool

	rootCmd = &cobra.Command{
		Use:   "phetrack",
		Short: "Build a normalized phenylalanine nutrient dataset",
		Long: `phetrack builds a normalized phenylalanine (phe) dataset for PKU diet
tracking: it fetches product records from the Open Food Facts search API,
classifies USDA FoodData Central dumps with a rule-based category engine,
derives missing phe values from protein, and optionally translates and
serves the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml, ./config/config.yaml, or /etc/phetrack/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(fetchCommand())
	rootCmd.AddCommand(classifyCommand())
	rootCmd.AddCommand(translateCommand())
	rootCmd.AddCommand(serveCommand())
}

// setup loads configuration and builds the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(debug || cfg.Server.Environment == "development")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
