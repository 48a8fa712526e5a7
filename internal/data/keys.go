package data

const (
	// DepRepoMetadata is the repository metadata object (stars, forks,
	// watchers, open issues, archived flag, pushed-at, default branch).
	DepRepoMetadata DependencyKey = "repo.metadata"

	// DepCommunityProfile is the community-profile file presence flags
	// (readme, license, contributing, security policy, code of conduct,
	// issue template, PR template). Absent when the API returns 404.
	DepCommunityProfile DependencyKey = "repo.community_profile"

	// DepRepoTree is the full recursive file-tree path listing of the
	// default branch. Empty when the repository has no resolvable tree.
	DepRepoTree DependencyKey = "repo.tree"

	// DepWorkflowTexts is the lowercased raw text of every workflow file
	// registered under GitHub Actions.
	DepWorkflowTexts DependencyKey = "repo.workflow_texts"

	// DepReadme is the README body used for the setup-instructions heuristic.
	DepReadme DependencyKey = "repo.readme"

	// DepRepoTags is the repository tag list.
	DepRepoTags DependencyKey = "repo.tags"

	// DepRepoReleases is the repository release list.
	DepRepoReleases DependencyKey = "repo.releases"

	// DepRecentCommits is the commit activity over the trailing window
	// (90 days), with one resolved author identity per commit.
	DepRecentCommits DependencyKey = "repo.recent_commits"

	// DepLatestPush is the most recent push timestamp, falling back to the
	// newest commit date when pushed-at is absent.
	DepLatestPush DependencyKey = "repo.latest_push"
)

// Priority returns the fetch priority for a dependency key (lower is higher priority).
// Metadata goes first: several other fetches need the default branch from it.
func Priority(key DependencyKey) int {
	switch key {
	case DepRepoMetadata:
		return 0
	case DepRepoTree, DepWorkflowTexts:
		return 1 // Shared by many sub-checks
	default:
		return 2
	}
}
