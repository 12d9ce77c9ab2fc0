// Package cmd implements the sable CLI.
//
// Configuration follows the usual precedence: command-line flags override
// SABLE_* environment variables, which override sable.yaml in the project
// root.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/go-sable/sable/pkg/errors"
	"github.com/go-sable/sable/pkg/runtime"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sable",
	Short: "Sable - retained-mode GUI runtime core",
	Long: `Sable is the runtime core of a cross-language retained-mode GUI
framework: application code supplies a pure model-to-document render
function plus event callbacks, and the runtime owns the document tree,
dispatches events, and decides when the tree must be rebuilt.

Quick Start:
  sable init myapp              Create a new application project
  sable demo                    Run the headless counter demo
  sable inspect --port 9223     Query a running debug server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sable.yaml in the project root)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig wires viper to the config file and SABLE_* environment
// variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sable")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

// setupLogging builds the zap logger from the configured level and installs
// it in the runtime and the error handler.
func setupLogging() error {
	level, err := zap.ParseAtomicLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log-level"), err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	runtime.SetLogger(logger)
	errors.SetHandler(&errors.ZapHandler{Logger: logger})
	return nil
}
