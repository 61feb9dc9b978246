package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast <script>",
	Short: "Dump the parsed declarations of a script",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func dumpAST(cmd *cobra.Command, args []string) error {
	source, err := readScript(args[0])
	if err != nil {
		return err
	}

	p, err := parser.New(parser.Options{Logger: log.Default()})
	if err != nil {
		return err
	}

	script, err := p.Parse(source)
	if err != nil {
		return err
	}

	fmt.Println(script.String())
	return nil
}
