package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/msto63/cliscript/core/config"
	"github.com/msto63/cliscript/core/log"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cliscript",
	Short: "CLIScript - declarative command-line interface definitions",
	Long: `cliscript compiles declarative CLI definition files and runs them
against registered host functions.

Subcommands:
  run      - compile a script and dispatch arguments against it
  check    - compile a script and report diagnostics
  tokens   - dump the token stream of a script
  ast      - dump the parsed declarations of a script
  version  - show build information`,
	PersistentPreRunE: setupLogging,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging configures the default logger from the config file and
// the --verbose flag. Without a config file the built-in defaults apply.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := config.NewEmpty().WithEnvPrefix("CLISCRIPT")
	if cfgFile != "" {
		loaded, err := config.LoadWithOptions(cfgFile, config.LoadOptions{
			Format:    config.FormatAuto,
			EnvPrefix: "CLISCRIPT",
		})
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := log.NewWithConfig(log.Config{
		Level:  cfg.GetString("log.level", "warn"),
		Format: cfg.GetString("log.format", "text"),
	})
	if err != nil {
		return err
	}

	if file := cfg.GetString("log.file"); file != "" {
		logger = logger.WithOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.GetInt("log.max_size_mb", 10),
			MaxBackups: cfg.GetInt("log.max_backups", 3),
			MaxAge:     cfg.GetInt("log.max_age_days", 28),
		})
	}

	if verbose {
		logger = logger.WithLevel(log.LevelDebug)
	}

	log.SetDefault(logger)
	return nil
}

func readScript(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read script %s: %w", path, err)
	}
	return string(content), nil
}
