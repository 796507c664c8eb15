// Package main is the entry point for the breakeven CLI.
package main

import (
	"os"

	"github.com/Simplici0/breakeven/cmd/breakeven/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
