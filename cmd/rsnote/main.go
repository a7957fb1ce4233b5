// Package main is the entry point for the rsnote CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/rsnote/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
