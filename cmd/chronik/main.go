package main

import (
	"os"

	"github.com/msto63/chronik/cmd/chronik/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
