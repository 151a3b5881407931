package main

import (
	"os"

	"github.com/spigell/placement-desk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
