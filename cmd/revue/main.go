package main

import (
	"os"

	"github.com/revue-dev/revue/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
