package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/scriptkit/internal/cli"
	"github.com/trebuchet-org/scriptkit/internal/config"
)

// Set by -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
