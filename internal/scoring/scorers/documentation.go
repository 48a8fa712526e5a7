package scorers

import (
	"context"
	"strings"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/scoring"

	"github.com/google/go-github/v81/github"
)

// documentationMaxPoints caps the category at 7 even though 8 underlying
// checks can each contribute a point (7 community-profile flags + the README
// setup heuristic). The cap is deliberate policy, not an off-by-one.
const documentationMaxPoints = 7

type DocumentationScorer struct{}

func (s *DocumentationScorer) ID() string {
	return "documentation"
}

func (s *DocumentationScorer) Title() string {
	return "Documentation Maturity"
}

func (s *DocumentationScorer) Description() string {
	return "Scores documentation maturity (0-7) from the community-profile file flags\n" +
		"(README, LICENSE, CONTRIBUTING, SECURITY policy, CODE_OF_CONDUCT, issue\n" +
		"template, PR template) plus one point when the README contains setup or\n" +
		"usage instructions. Points are capped at 7."
}

func (s *DocumentationScorer) Category() scoring.Category {
	return scoring.CategoryDocumentation
}

func (s *DocumentationScorer) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{data.DepCommunityProfile, data.DepReadme}, nil
}

func (s *DocumentationScorer) Score(ctx context.Context, repo *github.Repository, dc data.DataContext) ([]scoring.SubScore, error) {
	files, err := depValue[*models.CommunityFiles](dc, data.DepCommunityProfile)
	if err != nil {
		return nil, err
	}
	readme, err := depValue[*models.ReadmeContent](dc, data.DepReadme)
	if err != nil {
		return nil, err
	}

	// The readme flag point comes from the community profile alone; a
	// fetchable README without the profile flag still only feeds the setup
	// keyword check below.
	presentMap := map[string]bool{
		"readme":                files.Readme,
		"license":               files.License,
		"contributing":          files.Contributing,
		"security_policy":       files.SecurityPolicy,
		"code_of_conduct":       files.CodeOfConduct,
		"issue_template":        files.IssueTemplate,
		"pull_request_template": files.PullRequestTemplate,
	}

	setupPresent := readmeHasSetupInstructions(readme)

	points := 0
	for _, item := range scoring.DocItems {
		if presentMap[item.Key] {
			points++
		}
	}
	if setupPresent {
		points++
	}

	var present, missing []string
	for _, item := range scoring.DocItems {
		if presentMap[item.Key] {
			present = append(present, item.Label)
		} else {
			missing = append(missing, item.Label)
		}
	}
	if setupPresent {
		present = append(present, "Setup & configuration instructions in README")
	} else {
		missing = append(missing, "Setup & configuration instructions in README")
	}

	sub := scoring.NewSubScore("Documentation Maturity", points, documentationMaxPoints, map[string]any{
		"present": present,
		"missing": missing,
	})
	return []scoring.SubScore{sub}, nil
}

func readmeHasSetupInstructions(readme *models.ReadmeContent) bool {
	if readme == nil || readme.Body == "" {
		return false
	}
	lower := strings.ToLower(readme.Body)
	for _, keyword := range scoring.SetupKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func init() {
	scoring.Register(&DocumentationScorer{})
}
