package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "repovitals",
	Short: "Assess GitHub repositories for documentation, infrastructure, and community health",
	Long: `RepoVitals assesses GitHub repositories via API and reports maturity and health scores.

RepoVitals is read-only: it fetches repository data, scores it against a fixed
rubric, and never mutates state.

Examples:
	# Show available commands and global flags
	repovitals --help

	# Assess a repository
	repovitals assess --repos org/repo

	# Assess every repository of an organization
	repovitals assess --org my-org

	# List scorers
	repovitals scorers list

	# Print build info
	repovitals version

Output:
	By default, commands write a human-readable table to stdout.
	Structured output is available via --format json|ndjson, --out, and --pdf
	(see "repovitals assess --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
