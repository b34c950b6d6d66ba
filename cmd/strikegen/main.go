// Package main provides the StrikeGen command-line entrypoint.
package main

import (
	"os"

	"github.com/dustinanglin/StrikeGen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
