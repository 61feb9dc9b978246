package main

import (
	"os"

	"github.com/msto63/cliscript/cmd/cliscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
