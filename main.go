package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/glenigan-pipeline/dedup-engine/pkg/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	if err := cli.Execute(Version); err != nil {
		os.Exit(1)
	}
}
