// Package main is the entry point for the iconify CLI.
package main

import (
	"os"

	"github.com/bingal/iconify-skill/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
