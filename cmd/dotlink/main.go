package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dotlink/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		os.Exit(1)
	}
}
