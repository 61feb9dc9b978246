package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cliscript"
	"github.com/msto63/cliscript/core/log"
)

var runCmd = &cobra.Command{
	Use:   "run <script> [-- arguments...]",
	Short: "Compile a script and dispatch arguments against it",
	Long: `Compiles a CLIScript definition file and runs the resulting CLI
with the given arguments. Arguments after "--" are passed to the script's
commands.

Examples:
  cliscript run app.cli -- copy src.txt dst.txt
  cliscript run app.cli -- --help`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	source, err := readScript(args[0])
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	engine, err := cliscript.Compile(source, cliscript.Options{
		Logger:   log.Default(),
		Registry: reg,
	})
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	outcome := engine.Run(args[1:])
	if outcome.Code != 0 {
		os.Exit(outcome.Code)
	}
	return nil
}
