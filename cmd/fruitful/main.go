// Package main provides the entry point for the fruitful CLI.
package main

import (
	"os"

	"github.com/fruitful-search/fruitful/cmd/fruitful/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
