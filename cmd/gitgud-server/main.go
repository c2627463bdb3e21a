package main

import (
	"os"

	"github.com/anndream/gitgud/cmd/gitgud-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
