package main

import (
	"os"

	"github.com/tormodhaugland/ct/cmd/ct/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
