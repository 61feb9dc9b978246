package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cliscript"
	"github.com/msto63/cliscript/core/log"
)

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Compile a script and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  checkScript,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkScript(cmd *cobra.Command, args []string) error {
	source, err := readScript(args[0])
	if err != nil {
		return err
	}

	engine, err := cliscript.Compile(source, cliscript.Options{
		Logger: log.Default(),
	})
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	tree := engine.Tree()
	fmt.Printf("OK: %s\n", tree.AppName)
	if tree.Default != nil {
		fmt.Println("  mode: single command")
	} else {
		fmt.Printf("  mode: %d commands\n", len(tree.Commands))
		for _, c := range tree.Commands {
			fmt.Printf("    %s - %s\n", c.Name, c.Description)
		}
	}
	if len(tree.RootOptions) > 0 {
		fmt.Printf("  root options: %d\n", len(tree.RootOptions))
	}
	return nil
}
