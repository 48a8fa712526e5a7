package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"repovitals/internal/config"
	"repovitals/internal/engine"
	"repovitals/internal/flags"
	gh "repovitals/internal/github"

	"github.com/spf13/cobra"
)

var cfg = config.New()

const assessHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	RepoVitals authenticates to GitHub using an access token.

	Sources (in order):
	1) --token flag
	2) GITHUB_TOKEN environment variable
	3) GitHub CLI (gh) authentication via gh auth token (if gh is installed and logged in)

  Token guidance (brief):
  - PAT (classic): typically needs repo (to read private repos) and read:org
    (to enumerate org repositories).
  - Fine-grained PAT: grant access to the target repositories with
    Metadata: Read and Contents: Read.

  Examples:
    # macOS/Linux
    export GITHUB_TOKEN="<your_token>"
    repovitals assess --org my-org

		# GitHub CLI auth
		gh auth login
		repovitals assess --org my-org

    # Windows PowerShell
    $env:GITHUB_TOKEN = "<your_token>"
    repovitals assess --org my-org

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasHelpSubCommands}}Additional help topics:
{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a set of GitHub repositories",
	Long: `Assess a set of GitHub repositories and report maturity and health scores.

Each repository is scored across three categories:
  documentation   (0-7)   community-profile files plus README setup instructions
  infrastructure  (0-18)  tests, CI/CD, scanning, releases, packaging, and more
  health          (0-12)  engagement, governance, maintainers, activity, risks

The total score maps to a maturity tier (Incubation, Growth, Mature) and the
health category total maps to a health label (Healthy, Moderate, Unhealthy).

Authentication:
  RepoVitals uses a GitHub access token. It prefers --token, then GITHUB_TOKEN,
  and can also reuse GitHub CLI authentication if gh is installed and logged in.

Output:
	Console output is controlled by --format (default: table).
	Structured outputs can be written via:
	- --out: write an aggregate JSON array or NDJSON stream to a file
	  (format inferred from the .json/.ndjson extension)
	- --pdf: write a PDF report to a file

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, repo.started, repo.assessed, repo.failed, run.finished).

Exit codes:
	0 = run completed (per-repo failures are logged to stderr, not fatal)
	1 = fatal error (assessment did not run)
	2 = malformed input (invalid flags, repo specs, or missing token)

Examples:
  # Token via environment variable
  export GITHUB_TOKEN="<your_token>"
  repovitals assess --org my-org

  # Explicit repositories with per-check details
  repovitals assess --repos octocat/hello-world,golang/go --details

	# Machine-readable stream plus a PDF report
	repovitals assess --user octocat --format ndjson --pdf vitals.pdf
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
		defer cancel()

		token, _, err := gh.ResolveAuthToken(ctx, cfg.Runtime.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(2)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "Error: GitHub auth token is required (set GITHUB_TOKEN or run 'gh auth login')")
			os.Exit(2)
		}

		client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(1)
		}
		eng := engine.NewEngine(client)
		code := eng.Run(ctx, cfg)
		cancel()
		os.Exit(code)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.SetHelpTemplate(assessHelpTemplate)

	// Targeting
	assessCmd.Flags().StringVar(&cfg.Targeting.Org, flags.FlagOrg, "", "GitHub organization account to assess (name or URL)")
	assessCmd.Flags().StringVar(&cfg.Targeting.User, flags.FlagUser, "", "GitHub user account to assess (name or URL)")
	assessCmd.Flags().StringSliceVar(&cfg.Targeting.Repos, flags.FlagRepos, nil, "Repositories to assess as OWNER/REPO (repeatable; comma-separated accepted)")
	assessCmd.Flags().StringVar(&cfg.Targeting.Archived, flags.FlagArchived, "include", "Archived repos policy: include|exclude|only (default: include)")
	assessCmd.Flags().StringVar(&cfg.Targeting.Forks, flags.FlagForks, "include", "Forks policy: include|exclude|only (default: include)")
	assessCmd.Flags().IntVar(&cfg.Targeting.Limit, flags.FlagLimit, 0, "Maximum number of repositories to assess (0 = unlimited)")

	// Scoring
	assessCmd.Flags().StringVar(&cfg.Scoring.Selector, flags.FlagScorers, "", "Comma-separated scorer IDs (empty = all scorers)")
	assessCmd.Flags().BoolVar(&cfg.Scoring.Details, flags.FlagDetails, false, "Include per-check details in output")

	// Output
	assessCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagFormat, "table", "Console output format: table|json|ndjson (default: table)")
	assessCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path (.json or .ndjson)")
	assessCmd.Flags().StringVar(&cfg.Output.PDF, flags.FlagPDF, "", "Write a PDF report to this path")

	// Runtime
	assessCmd.Flags().StringVar(&cfg.Runtime.Token, flags.FlagToken, "", "GitHub access token (overrides GITHUB_TOKEN and gh CLI auth)")
	assessCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent repository assessments (default: 4)")
	assessCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 30m)")
}
