package main

import (
	"os"

	"github.com/kadolab/kado-cli/internal/adapters/driving/cli"
)

// version is injected at build time via -ldflags.
var version = ""

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
