package main

import (
	"context"
	"os"

	"github.com/simonhull/firebird-suite/postgen/internal/commands"
	"github.com/simonhull/firebird-suite/postgen/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
