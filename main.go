package main

import (
	"log/slog"
	"os"

	"miren.dev/fixme/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
