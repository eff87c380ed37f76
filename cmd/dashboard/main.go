package main

import (
	"os"

	"github.com/trogers1052/stock-dashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
