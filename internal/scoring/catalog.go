package scoring

import "regexp"

// Static filename and keyword catalogs backing the scoring sub-checks.
// Keeping these as enumerated sets (rather than literals scattered through
// the checks) keeps every boolean check auditable and testable in isolation.
//
// Path catalogs follow tree-listing semantics: entries ending in "/" are
// directory-prefix matches, everything else is exact path membership.
// Keyword catalogs are matched case-insensitively against workflow text.

// DocItems maps documentation check keys to human-readable labels, in
// report order.
var DocItems = []struct {
	Key   string
	Label string
}{
	{"readme", "README present"},
	{"license", "LICENSE present"},
	{"contributing", "CONTRIBUTING present"},
	{"security_policy", "SECURITY policy present"},
	{"code_of_conduct", "CODE_OF_CONDUCT present"},
	{"issue_template", "Issue template present"},
	{"pull_request_template", "PR template present"},
}

// SetupKeywords are README phrases that indicate setup/usage instructions.
var SetupKeywords = []string{
	"getting started",
	"installation",
	"install",
	"setup",
	"usage",
	"quickstart",
}

// LinterConfigNames are well-known linter/formatter config files.
var LinterConfigNames = []string{
	// JavaScript/TypeScript
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.json",
	".eslintrc.yml",
	".eslintrc.yaml",
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yml",
	".prettierrc.yaml",
	"prettier.config.js",
	"prettier.config.cjs",
	// Python
	".flake8",
	"pyproject.toml",
	"setup.cfg",
	".pylintrc",
	"ruff.toml",
	// Go
	".golangci.yml",
	".golangci.yaml",
	// Rust
	"rustfmt.toml",
	// General
	".editorconfig",
}

// BuildPackagingFiles are well-known build/package manifests.
var BuildPackagingFiles = []string{
	// General
	"Makefile",
	"Dockerfile",
	"docker-compose.yml",
	// Node
	"package.json",
	"pnpm-lock.yaml",
	"yarn.lock",
	// Python
	"pyproject.toml",
	"setup.py",
	"requirements.txt",
	// Rust
	"Cargo.toml",
	// Go
	"go.mod",
	// Java
	"pom.xml",
	"build.gradle",
	"build.gradle.kts",
	// C/C++
	"CMakeLists.txt",
	// Nix
	"flake.nix",
}

// IaCFiles are well-known infrastructure-as-code files.
var IaCFiles = []string{
	"main.tf",
	"terraform.tfvars",
	"chart.yaml",
	"Chart.yaml",
	"values.yaml",
	"kustomization.yaml",
	"playbook.yml",
	"playbook.yaml",
}

// InfraDirPrefixes are directory prefixes conventionally holding deployment
// or infrastructure definitions.
var InfraDirPrefixes = []string{
	"k8s/",
	"deploy/",
	"infra/",
}

// CIConfigEntries are CI platform config files/paths across hosting providers.
var CIConfigEntries = []string{
	".github/workflows/",
	".circleci/config.yml",
	".travis.yml",
	"azure-pipelines.yml",
	".gitlab-ci.yml",
}

// DependencyUpdateFiles are dependency-bot configuration files.
var DependencyUpdateFiles = []string{
	".github/dependabot.yml",
	".github/dependabot.yaml",
	"renovate.json",
	".renovaterc.json",
}

// ChangelogPaths are accepted changelog locations.
var ChangelogPaths = []string{
	"CHANGELOG.md",
	"changelog.md",
	"CHANGELOG",
	"docs/CHANGELOG.md",
}

// CodeownersPaths and GovernancePaths back the Governance & Leadership check.
var (
	CodeownersPaths = []string{"CODEOWNERS", ".github/CODEOWNERS"}
	GovernancePaths = []string{"GOVERNANCE.md", "MAINTAINERS", "OWNERS"}
)

// SecurityPolicyPaths back the Sustainability & Risks check.
var SecurityPolicyPaths = []string{"SECURITY.md", ".github/SECURITY.md"}

// TestFilePatterns match paths that indicate checked-in tests.
var TestFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|/)tests?(/|$)`),
	regexp.MustCompile(`(?i)(^|/).*(_test|\.test\.|\.spec\.)`),
}

// Workflow-text keyword hints (all lowercase).
var (
	ScanningHints = []string{
		"codeql",
		"trivy",
		"snyk",
		"semgrep",
		"bandit",
		"gosec",
	}

	LintHints = []string{
		"eslint",
		"flake8",
		"ruff",
		"pylint",
		"prettier",
		"golangci-lint",
		"clang-tidy",
	}

	BuildHints = []string{
		"make ",
		"docker build",
		"npm run build",
		"pnpm build",
		"yarn build",
		"mvn package",
		"gradle build",
		"cmake ",
		"cargo build",
		"go build",
	}

	TestHints = []string{
		"pytest",
		"python -m pytest",
		"npm test",
		"pnpm test",
		"yarn test",
		"go test",
		"cargo test",
		"mvn test",
	}

	ReleaseHints = []string{
		"gh release",
		"actions/create-release",
		"softprops/action-gh-release",
		"semantic-release",
	}
)
