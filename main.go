package main

import (
	"os"

	"github.com/rash-sh/relprep/internal/cmd"
	"github.com/rash-sh/relprep/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
