package scorers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/scoring"

	"github.com/google/go-github/v81/github"
)

type InfrastructureScorer struct{}

func (s *InfrastructureScorer) ID() string {
	return "infrastructure"
}

func (s *InfrastructureScorer) Title() string {
	return "Technical Infrastructure"
}

func (s *InfrastructureScorer) Description() string {
	return "Scores technical infrastructure (0-18) across nine independent checks:\n" +
		"automated tests, CI/CD pipelines, security scanning, dependency updates,\n" +
		"linting/formatting, release management, build & packaging, infrastructure\n" +
		"as code, and CI platform integration. Each check is a pure function of the\n" +
		"default-branch file tree and the repository's workflow texts."
}

func (s *InfrastructureScorer) Category() scoring.Category {
	return scoring.CategoryInfrastructure
}

func (s *InfrastructureScorer) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{
		data.DepRepoTree,
		data.DepWorkflowTexts,
		data.DepRepoTags,
		data.DepRepoReleases,
	}, nil
}

func (s *InfrastructureScorer) Score(ctx context.Context, repo *github.Repository, dc data.DataContext) ([]scoring.SubScore, error) {
	tree, err := depValue[*models.TreeListing](dc, data.DepRepoTree)
	if err != nil {
		return nil, err
	}
	workflows, err := depValue[*models.WorkflowTexts](dc, data.DepWorkflowTexts)
	if err != nil {
		return nil, err
	}
	tags, err := depValue[*models.TagList](dc, data.DepRepoTags)
	if err != nil {
		return nil, err
	}
	releases, err := depValue[*models.ReleaseList](dc, data.DepRepoReleases)
	if err != nil {
		return nil, err
	}

	return []scoring.SubScore{
		scoreAutomatedTests(tree, workflows),
		scoreCICDPipelines(tree, workflows),
		scoreSecurityScanning(workflows),
		scoreDependencyUpdates(tree),
		scoreLinting(tree, workflows),
		scoreReleaseManagement(tree, tags, releases),
		scoreBuildPackaging(tree),
		scoreInfraAsCode(tree),
		scorePlatformIntegration(tree),
	}, nil
}

func scoreAutomatedTests(tree *models.TreeListing, workflows *models.WorkflowTexts) scoring.SubScore {
	hasTestFiles := false
	for _, p := range tree.Paths() {
		for _, pat := range scoring.TestFilePatterns {
			if pat.MatchString(p) {
				hasTestFiles = true
				break
			}
		}
		if hasTestFiles {
			break
		}
	}
	testsInCI := workflows.ContainsAny(scoring.TestHints)

	points := 0
	if hasTestFiles {
		points += 2
	}
	if testsInCI {
		points++
	}
	return scoring.NewSubScore("Automated Tests", points, 3, map[string]any{
		"has_test_files": hasTestFiles,
		"tests_in_ci":    testsInCI,
	})
}

func scoreCICDPipelines(tree *models.TreeListing, workflows *models.WorkflowTexts) scoring.SubScore {
	hasCIDir := tree.HasDir(".github/workflows/")
	hasBuildSteps := workflows.ContainsAny(scoring.BuildHints)
	hasReleaseSteps := workflows.ContainsAny(scoring.ReleaseHints)

	points := 0
	if hasCIDir {
		points++
	}
	if hasBuildSteps {
		points++
	}
	if hasReleaseSteps {
		points++
	}
	return scoring.NewSubScore("CI/CD Pipelines", points, 3, map[string]any{
		"has_ci":        hasCIDir,
		"build_in_ci":   hasBuildSteps,
		"release_in_ci": hasReleaseSteps,
	})
}

func scoreSecurityScanning(workflows *models.WorkflowTexts) scoring.SubScore {
	hasScanning := workflows.ContainsAny(scoring.ScanningHints)
	points := 0
	if hasScanning {
		points = 2
	}
	return scoring.NewSubScore("Security Scanning", points, 2, map[string]any{
		"scanning_in_ci": hasScanning,
	})
}

func scoreDependencyUpdates(tree *models.TreeListing) scoring.SubScore {
	hasDepUpdates := tree.HasAny(scoring.DependencyUpdateFiles)
	points := 0
	if hasDepUpdates {
		points = 2
	}
	return scoring.NewSubScore("Dependency Updates", points, 2, map[string]any{
		"dependabot_or_renovate": hasDepUpdates,
	})
}

func scoreLinting(tree *models.TreeListing, workflows *models.WorkflowTexts) scoring.SubScore {
	hasLintConfig := tree.HasAny(scoring.LinterConfigNames)
	lintInCI := workflows.ContainsAny(scoring.LintHints)

	points := 0
	switch {
	case hasLintConfig && lintInCI:
		points = 2
	case hasLintConfig || lintInCI:
		points = 1
	}
	return scoring.NewSubScore("Linting/Formatting", points, 2, map[string]any{
		"lint_config": hasLintConfig,
		"lint_in_ci":  lintInCI,
	})
}

func scoreReleaseManagement(tree *models.TreeListing, tags *models.TagList, releases *models.ReleaseList) scoring.SubScore {
	hasChangelog := tree.HasAny(scoring.ChangelogPaths)

	points := 0
	if tags.Count > 0 {
		points++
	}
	if releases.Count > 0 || hasChangelog {
		points++
	}
	return scoring.NewSubScore("Release Management", points, 2, map[string]any{
		"tags":          tags.Count,
		"releases":      releases.Count,
		"has_changelog": hasChangelog,
	})
}

func scoreBuildPackaging(tree *models.TreeListing) scoring.SubScore {
	hasBuildPackaging := tree.HasAny(scoring.BuildPackagingFiles)
	points := 0
	if hasBuildPackaging {
		points = 2
	}
	return scoring.NewSubScore("Build & Packaging Tools", points, 2, map[string]any{
		"has_build_or_packaging_files": hasBuildPackaging,
	})
}

func scoreInfraAsCode(tree *models.TreeListing) scoring.SubScore {
	hasIaC := tree.HasAny(scoring.IaCFiles)
	if !hasIaC {
		for _, prefix := range scoring.InfraDirPrefixes {
			if tree.HasDir(prefix) {
				hasIaC = true
				break
			}
		}
	}
	points := 0
	if hasIaC {
		points = 1
	}
	return scoring.NewSubScore("Infrastructure as Code", points, 1, map[string]any{
		"has_iac": hasIaC,
	})
}

func scorePlatformIntegration(tree *models.TreeListing) scoring.SubScore {
	hasPlatform := tree.HasAny(scoring.CIConfigEntries)
	points := 0
	if hasPlatform {
		points = 1
	}
	return scoring.NewSubScore("Platform Integration", points, 1, map[string]any{
		"has_ci_config": hasPlatform,
	})
}

func init() {
	scoring.Register(&InfrastructureScorer{})
}
