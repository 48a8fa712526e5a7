package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants avoids drift between Cobra flag wiring
// and other code paths that need to reference flags by name.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Targeting
	FlagOrg      = "org"
	FlagUser     = "user"
	FlagRepos    = "repos"
	FlagArchived = "archived"
	FlagForks    = "forks"
	FlagLimit    = "limit"

	// Scoring
	FlagScorers = "scorers"
	FlagDetails = "details"

	// Output
	FlagFormat = "format"
	FlagOut    = "out"
	FlagPDF    = "pdf"

	// Runtime
	FlagToken       = "token"
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
)
