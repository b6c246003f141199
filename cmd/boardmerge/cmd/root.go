// Package cmd implements the boardmerge CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subjectlab/boardmerge"
	"github.com/subjectlab/boardmerge/pkg/logging"
)

// Global flag values, bound in init.
var (
	boardFile string
	verbose   bool
	quiet     bool
	noColor   bool
	logLevel  string
	logFormat string
)

// logger is configured in setup and shared by all commands.
var logger zerolog.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boardmerge",
	Short: "Maintain a board of categorized subjects and reconcile CSV imports into it",
	Long: `Boardmerge maintains a board of categorized subjects and include/exclude
terms, and reconciles externally authored CSV imports against it through a
two-stage, conflict-detecting merge.

The board lives in a YAML file between invocations. Imports never modify the
board until every conflict has a resolution; resolutions are supplied from a
YAML file (see "boardmerge import --help").`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardFile, "board", "b", "", "board YAML file (default board.yaml, env BOARDMERGE_BOARD)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (warnings and errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "log format: auto, console, json")
}

// setup loads configuration and builds the shared logger. Precedence, highest
// first: flags, environment variables, .env files, defaults.
func setup(cmd *cobra.Command, _ []string) error {
	loadEnvFiles()

	viper.SetEnvPrefix("boardmerge")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if !cmd.Flags().Changed("board") {
		if v := viper.GetString("board"); v != "" {
			boardFile = v
		}
	}
	if boardFile == "" {
		boardFile = "board.yaml"
	}

	logger = logging.NewLoggerFromConfig(&logging.Config{
		Level:   determineLogLevel(),
		Format:  logFormat,
		Output:  "stderr",
		NoColor: noColor,
	})
	logging.SetDefault(logger)
	return nil
}

// determineLogLevel resolves the log level. Precedence, highest first:
// --log-level, --verbose/--quiet, BOARDMERGE_LOG_LEVEL, info.
func determineLogLevel() string {
	if logLevel != "" {
		return logLevel
	}
	if verbose && quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if verbose {
		return "debug"
	}
	if quiet {
		return "warn"
	}
	if v := viper.GetString("log_level"); v != "" {
		return v
	}
	return "info"
}

// loadEnvFiles loads environment variables from .env files; .env.local
// overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// newEngine builds an engine over the configured board file.
func newEngine() (boardmerge.Engine, error) {
	return boardmerge.New(
		boardmerge.WithBoardFile(boardFile),
		boardmerge.WithLogger(logger),
	)
}
