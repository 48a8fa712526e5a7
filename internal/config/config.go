package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Targeting Targeting
	Scoring   Scoring
	Output    Output
	Runtime   Runtime
}

type Targeting struct {
	// Org is the GitHub organization account to assess (name or URL; see --org).
	Org string

	// User is the GitHub user account to assess (name or URL; see --user).
	User string

	// Repos is an explicit list of repositories to assess as OWNER/REPO (see --repos).
	// Values may be provided as repeated flags and/or comma-separated lists.
	Repos []string

	// Archived controls how archived repos are handled (see --archived).
	// Allowed values: include, exclude, only.
	// Archived repos are included by default so they can be scored (an archived
	// repo always scores zero on Sustainability & Risks but is still reportable).
	Archived string

	// Forks controls how forked repos are handled (see --forks).
	// Allowed values: include, exclude, only.
	Forks string

	// Limit caps how many repositories are assessed (see --limit). 0 means unlimited.
	Limit int
}

type Scoring struct {
	// Selector selects which scorers run.
	// Empty means all scorers; otherwise a comma-separated list of scorer IDs (see --scorers).
	Selector string

	// Details includes per-check detail maps in structured output (see --details).
	Details bool
}

type Output struct {
	// Format controls the console output format (see --format).
	// Allowed values: table, json, ndjson.
	Format string

	// Out writes structured output to this path (see --out).
	// Format is inferred from the file extension: .json or .ndjson.
	Out string

	// PDF writes a PDF report to this path (see --pdf).
	PDF string
}

type Runtime struct {
	// Token is an explicit GitHub access token (see --token).
	// If empty, GITHUB_TOKEN and then gh CLI auth are tried.
	Token string

	// Concurrency controls how many repositories are assessed in parallel (see --concurrency).
	// Must be >= 1. Sub-scores of a single repository always share one fetch pass.
	Concurrency int

	// Timeout is the global deadline for the whole run (see --timeout).
	Timeout time.Duration

	// Verbose enables per-request API logging on stderr.
	Verbose bool
}

func New() *Config {
	return &Config{
		Targeting: Targeting{
			Archived: "include",
			Forks:    "include",
		},
		Output: Output{
			Format: "table",
		},
		Runtime: Runtime{
			Concurrency: 4,
			Timeout:     30 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Targeting.Repos = splitCommaList(c.Targeting.Repos)

	if c.Targeting.Org != "" {
		org, err := normalizeAccountSelector(c.Targeting.Org)
		if err != nil {
			return fmt.Errorf("invalid --org value: %w", err)
		}
		c.Targeting.Org = org
	}
	if c.Targeting.User != "" {
		user, err := normalizeAccountSelector(c.Targeting.User)
		if err != nil {
			return fmt.Errorf("invalid --user value: %w", err)
		}
		c.Targeting.User = user
	}

	if c.Targeting.Org == "" && c.Targeting.User == "" && len(c.Targeting.Repos) == 0 {
		return errors.New("at least one of --org, --user, or --repos must be provided")
	}
	if c.Targeting.Org != "" && c.Targeting.User != "" {
		return errors.New("--org and --user are mutually exclusive")
	}

	for _, spec := range c.Targeting.Repos {
		if _, _, err := SplitOwnerRepo(spec); err != nil {
			return err
		}
	}

	c.Targeting.Archived = normalizeEnumValue(c.Targeting.Archived)
	if c.Targeting.Archived == "" {
		c.Targeting.Archived = "include"
	}
	if c.Targeting.Archived != "include" && c.Targeting.Archived != "exclude" && c.Targeting.Archived != "only" {
		return fmt.Errorf("unsupported --archived: %s (must be one of: include, exclude, only)", c.Targeting.Archived)
	}

	c.Targeting.Forks = normalizeEnumValue(c.Targeting.Forks)
	if c.Targeting.Forks == "" {
		c.Targeting.Forks = "include"
	}
	if c.Targeting.Forks != "include" && c.Targeting.Forks != "exclude" && c.Targeting.Forks != "only" {
		return fmt.Errorf("unsupported --forks: %s (must be one of: include, exclude, only)", c.Targeting.Forks)
	}

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
	if c.Output.Format != "table" && c.Output.Format != "json" && c.Output.Format != "ndjson" {
		return fmt.Errorf("unsupported --format: %s (must be one of: table, json, ndjson)", c.Output.Format)
	}

	if c.Output.Out != "" {
		ext := strings.ToLower(filepath.Ext(c.Output.Out))
		switch ext {
		case ".json", ".ndjson", ".jsonl":
		case "":
			return errors.New("cannot infer output format for --out (missing file extension); use .json or .ndjson")
		default:
			return fmt.Errorf("cannot infer output format for --out from extension %q; use .json or .ndjson", ext)
		}
	}

	if c.Targeting.Limit < 0 {
		return errors.New("--limit must be >= 0")
	}
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

// SplitOwnerRepo splits an "owner/name" repository spec, accepting common
// GitHub URL forms (https://github.com/owner/repo, git@github.com:owner/repo.git).
func SplitOwnerRepo(spec string) (owner string, name string, err error) {
	norm, err := normalizeRepoSelector(spec)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(norm, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo spec %q; expected owner/name", spec)
	}
	return parts[0], parts[1], nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeRepoSelector(sel string) (string, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
	}

	// Common URL forms:
	// - https://github.com/owner/repo
	// - https://github.com/owner/repo.git
	// - github.com/owner/repo
	// - git@github.com:owner/repo.git
	if strings.HasPrefix(sel, "github.com/") || strings.HasPrefix(sel, "www.github.com/") {
		sel = "https://" + sel
	}

	if strings.HasPrefix(sel, "git@github.com:") {
		rest := strings.Trim(strings.TrimPrefix(sel, "git@github.com:"), "/")
		parts := strings.Split(rest, "/")
		if len(parts) < 2 {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		owner := parts[0]
		repo := strings.TrimSuffix(parts[1], ".git")
		if owner == "" || repo == "" {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		return owner + "/" + repo, nil
	}

	if strings.HasPrefix(sel, "http://") || strings.HasPrefix(sel, "https://") {
		u, err := url.Parse(sel)
		if err != nil {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		host := strings.ToLower(u.Hostname())
		if host == "www.github.com" {
			host = "github.com"
		}
		if host != "github.com" {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		owner := parts[0]
		repo := strings.TrimSuffix(parts[1], ".git")
		if owner == "" || repo == "" {
			return "", fmt.Errorf("invalid repo spec %q; expected owner/name", sel)
		}
		return owner + "/" + repo, nil
	}

	return sel, nil
}

func normalizeAccountSelector(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	// Accept a raw account name, or a GitHub URL like:
	//   https://github.com/<name>
	//   https://github.com/orgs/<name>
	//   https://github.com/users/<name>
	//   github.com/<name>
	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%q", raw)
		}
		host := strings.ToLower(u.Hostname())
		if host == "www.github.com" {
			host = "github.com"
		}
		if host != "github.com" {
			return "", fmt.Errorf("%q", raw)
		}
		parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
		if len(parts) == 0 {
			return "", fmt.Errorf("%q", raw)
		}
		if parts[0] == "orgs" || parts[0] == "users" {
			if len(parts) < 2 {
				return "", fmt.Errorf("%q", raw)
			}
			return parts[1], nil
		}
		return parts[0], nil
	}

	// Basic sanity: reject obvious repo-like inputs.
	if strings.Contains(raw, "/") {
		return "", fmt.Errorf("%q", raw)
	}
	return raw, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
