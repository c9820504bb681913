package main

import (
	"os"

	"stockpick/cmd/stockpick/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
