// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/spend-insights/internal/config"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Config string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spend-insights",
		Short: "A CLI tool to summarize a personal-finance ledger.",
		Long: `spend-insights reads a bank operations ledger (xlsx or csv) and produces
a main page summary with card totals, top transactions, currency rates and stock
prices, spending reports and cashback/round-up calculations.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flags.
	SharedFlags = CommonFlags{}

	// AppConfig is the configuration loaded by Setup.
	AppConfig *config.Config

	// AppContainer is the dependency container built by Setup.
	AppContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Ledger file (.xlsx or .csv); defaults to data.transactions_file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Config, "config", "c", "", "Config file (default: config.yaml in $HOME/.spend-insights, .spend-insights or .)")
}

// Setup loads .env, the configuration and builds the container.
func Setup() error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig(SharedFlags.Config)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	return nil
}

// GetContainer returns the application container, or an error before Setup ran.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}

// GetConfig returns the loaded configuration (nil before Setup).
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the container logger, or a no-op logger before Setup.
func GetLogger() logging.Logger {
	if AppContainer == nil {
		return logging.NewNopLogger()
	}
	return AppContainer.GetLogger()
}
