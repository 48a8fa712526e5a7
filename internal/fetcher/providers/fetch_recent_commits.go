package providers

import (
	"context"
	"time"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

// commitWindowDays is the trailing window used for commit-activity scoring.
const commitWindowDays = 90

type recentCommitsFetcher struct{}

func (d *recentCommitsFetcher) Key() data.DependencyKey {
	return data.DepRecentCommits
}

func (d *recentCommitsFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *recentCommitsFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	since := time.Now().UTC().AddDate(0, 0, -commitWindowDays)

	activity := &models.CommitActivity{WindowDays: commitWindowDays}
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return nil, err
		}
		commits, resp, err := f.Client().Client.Repositories.ListCommits(ctx, repo.GetOwner().GetLogin(), repo.GetName(), opts)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			// 409 means an empty repository with no commit history.
			if resp != nil && (resp.StatusCode == 404 || resp.StatusCode == 409) {
				return activity, nil
			}
			return nil, err
		}
		for _, c := range commits {
			// Prefer the GitHub login; fall back to the git author name.
			author := c.GetAuthor().GetLogin()
			if author == "" {
				author = c.GetCommit().GetAuthor().GetName()
			}
			activity.Authors = append(activity.Authors, author)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return activity, nil
}

func init() {
	fetcher.RegisterDataFetcher(&recentCommitsFetcher{})
}
