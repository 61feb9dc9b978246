package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cliscript"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <script>",
	Short: "Dump the token stream of a script",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func dumpTokens(cmd *cobra.Command, args []string) error {
	source, err := readScript(args[0])
	if err != nil {
		return err
	}

	tokens, err := cliscript.Tokenize(source)
	for _, tok := range tokens {
		fmt.Printf("%3d:%-3d %s\n", tok.Line, tok.Column, tok.String())
	}
	return err
}
