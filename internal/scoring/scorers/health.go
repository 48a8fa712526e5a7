package scorers

import (
	"context"
	"time"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/scoring"

	"github.com/google/go-github/v81/github"
)

// daysSinceUnknown is the days-since-last-push value used when the API
// reports no push timestamp and the repository has no commits. It is large
// enough to land past every Activity Trend threshold, so absent push data
// always scores 0 there.
const daysSinceUnknown = 9999

type HealthScorer struct {
	// now is a test seam for the Activity Trend clock.
	now func() time.Time
}

func (s *HealthScorer) ID() string {
	return "health"
}

func (s *HealthScorer) Title() string {
	return "Community Health"
}

func (s *HealthScorer) Description() string {
	return "Scores community health (0-12) across six independent checks:\n" +
		"community engagement, governance & leadership, succession planning,\n" +
		"ecosystem importance, activity trend, and sustainability & risks. Checks\n" +
		"use repository counters, the default-branch file tree, and commit\n" +
		"activity over the last 90 days."
}

func (s *HealthScorer) Category() scoring.Category {
	return scoring.CategoryHealth
}

func (s *HealthScorer) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{
		data.DepRepoMetadata,
		data.DepRepoTree,
		data.DepRecentCommits,
		data.DepLatestPush,
	}, nil
}

func (s *HealthScorer) Score(ctx context.Context, repo *github.Repository, dc data.DataContext) ([]scoring.SubScore, error) {
	meta, err := depValue[*github.Repository](dc, data.DepRepoMetadata)
	if err != nil {
		return nil, err
	}
	tree, err := depValue[*models.TreeListing](dc, data.DepRepoTree)
	if err != nil {
		return nil, err
	}
	commits, err := depValue[*models.CommitActivity](dc, data.DepRecentCommits)
	if err != nil {
		return nil, err
	}
	push, err := depValue[*models.PushActivity](dc, data.DepLatestPush)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	stars := meta.GetStargazersCount()
	forks := meta.GetForksCount()
	watchers := meta.GetSubscribersCount()
	if watchers == 0 {
		watchers = meta.GetWatchersCount()
	}
	openIssues := meta.GetOpenIssuesCount()
	archived := meta.GetArchived()
	numAuthors := commits.DistinctAuthorCount()

	return []scoring.SubScore{
		scoreCommunityEngagement(stars, forks, openIssues),
		scoreGovernance(tree),
		scoreSuccessionPlanning(numAuthors),
		scoreEcosystemImportance(forks, watchers),
		scoreActivityTrend(push, now()),
		scoreSustainability(tree, archived, numAuthors),
	}, nil
}

func scoreCommunityEngagement(stars, forks, openIssues int) scoring.SubScore {
	points := 0
	switch {
	case stars >= 25 || forks >= 10 || openIssues >= 25:
		points = 2
	case stars >= 5 || forks >= 2 || openIssues >= 5:
		points = 1
	}
	return scoring.NewSubScore("Community Engagement", points, 2, map[string]any{
		"stars":       stars,
		"forks":       forks,
		"open_issues": openIssues,
	})
}

func scoreGovernance(tree *models.TreeListing) scoring.SubScore {
	hasCodeowners := tree.HasAny(scoring.CodeownersPaths)
	hasGovernance := tree.HasAny(scoring.GovernancePaths)

	points := 0
	switch {
	case hasCodeowners && hasGovernance:
		points = 2
	case hasCodeowners || hasGovernance:
		points = 1
	}
	return scoring.NewSubScore("Governance & Leadership", points, 2, map[string]any{
		"codeowners":      hasCodeowners,
		"governance_docs": hasGovernance,
	})
}

func scoreSuccessionPlanning(numAuthors int) scoring.SubScore {
	points := 0
	switch {
	case numAuthors >= 4:
		points = 2
	case numAuthors >= 2:
		points = 1
	}
	return scoring.NewSubScore("Succession Planning", points, 2, map[string]any{
		"active_maintainers_90d": numAuthors,
	})
}

func scoreEcosystemImportance(forks, watchers int) scoring.SubScore {
	points := 0
	switch {
	case forks >= 20 || watchers >= 50:
		points = 2
	case forks >= 5 || watchers >= 15:
		points = 1
	}
	return scoring.NewSubScore("Ecosystem Importance", points, 2, map[string]any{
		"forks":    forks,
		"watchers": watchers,
	})
}

func scoreActivityTrend(push *models.PushActivity, now time.Time) scoring.SubScore {
	daysSince := daysSinceUnknown
	if push != nil && push.Found {
		daysSince = int(now.Sub(push.LastPush).Hours() / 24)
	}

	points := 0
	switch {
	case daysSince <= 30:
		points = 2
	case daysSince <= 90:
		points = 1
	}
	return scoring.NewSubScore("Activity Trend", points, 2, map[string]any{
		"days_since_last_commit": daysSince,
	})
}

func scoreSustainability(tree *models.TreeListing, archived bool, numAuthors int) scoring.SubScore {
	hasSecurity := tree.HasAny(scoring.SecurityPolicyPaths)

	points := 0
	if !archived {
		if hasSecurity {
			points++
		}
		if numAuthors >= 3 {
			points++
		}
	}
	return scoring.NewSubScore("Sustainability & Risks", points, 2, map[string]any{
		"security_policy": hasSecurity,
		"archived":        archived,
	})
}

func init() {
	scoring.Register(&HealthScorer{})
}
