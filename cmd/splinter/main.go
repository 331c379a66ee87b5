// Package main is the entry point for the Splinter CLI.
package main

import (
	"os"

	"github.com/mrz1836/splinter/internal/cli"
)

// Populated at build time via -ldflags.
//
//nolint:gochecknoglobals // Build-time version stamping requires package-level vars
var (
	version string
	commit  string
	date    string
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
