package main

import (
	"os"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
