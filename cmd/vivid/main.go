package main

import (
	"os"

	"github.com/go-vivid/vivid/cmd/vivid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
