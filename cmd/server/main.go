/*
main.go - Application entry point

PURPOSE:
  Command-line entry for the calculator engine. The serve command starts the
  HTTP API; version prints the build version.

STARTUP SEQUENCE (serve):
  1. Load config (defaults, YAML file, CALC_* env, flags)
  2. Set up zerolog
  3. Open the result cache (memory, sqlite or none)
  4. Create API handler and router
  5. Start server and cache purge scheduler
  6. Graceful shutdown on SIGINT/SIGTERM

CONFIG FILE:
  --config path/to/config.yaml, otherwise ./config.yaml or
  $HOME/.config/calc-engine/config.yaml when present. See config/config.go
  for every key.

EXAMPLES:
  # Defaults: port 8080, in-memory cache
  ./server serve

  # Persistent cache, JSON logs
  CALC_LOGGING_FORMAT=json ./server serve --cache-driver=sqlite --cache-path=./data/results.db

  # Different port
  ./server serve --port=3000

SEE ALSO:
  - serve.go: Server lifecycle
  - api/server.go: Router configuration
  - config/config.go: Settings
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tigerkidtools/calc-engine/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "server",
		Short: "Calculator engine API",
		Long: `Deterministic calculation engines behind the personal finance and
health calculators: Coast FIRE, debt snowball and intermittent fasting.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	config.SetDefaults(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/calc-engine/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "calc-engine"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	config.BindEnv(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(os.Stderr, viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("config file loaded")
	}

	return nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(out io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}

	switch format {
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calc-engine %s\n", version)
		},
	}
}
