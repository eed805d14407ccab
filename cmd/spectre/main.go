package main

import (
	"os"

	"spectre/cmd/spectre/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
