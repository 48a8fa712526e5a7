package providers

import (
	"context"
	"fmt"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type latestPushFetcher struct{}

func (d *latestPushFetcher) Key() data.DependencyKey {
	return data.DepLatestPush
}

func (d *latestPushFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *latestPushFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	val, err := f.Fetch(ctx, repo, data.DepRepoMetadata, nil)
	if err != nil {
		return nil, err
	}
	full, ok := val.(*github.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for %s", val, data.DepRepoMetadata)
	}

	if pushed := full.GetPushedAt(); !pushed.IsZero() {
		return &models.PushActivity{Found: true, LastPush: pushed.Time}, nil
	}

	// No pushed-at on the repository object; fall back to the newest commit.
	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	commits, resp, err := f.Client().Client.Repositories.ListCommits(ctx, repo.GetOwner().GetLogin(), repo.GetName(), &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp.Response)
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == 404 || resp.StatusCode == 409) {
			return &models.PushActivity{}, nil
		}
		return nil, err
	}
	if len(commits) == 0 {
		return &models.PushActivity{}, nil
	}
	date := commits[0].GetCommit().GetCommitter().GetDate()
	if date.IsZero() {
		return &models.PushActivity{}, nil
	}
	return &models.PushActivity{Found: true, LastPush: date.Time}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&latestPushFetcher{})
}
