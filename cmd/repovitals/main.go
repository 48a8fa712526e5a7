package main

import (
	"repovitals/internal/cli"
	_ "repovitals/internal/fetcher/providers"
	_ "repovitals/internal/scoring/scorers"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
