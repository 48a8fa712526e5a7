package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type releasesFetcher struct{}

func (d *releasesFetcher) Key() data.DependencyKey {
	return data.DepRepoReleases
}

func (d *releasesFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *releasesFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	count := 0
	opts := &github.ListOptions{PerPage: 100}
	for {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return nil, err
		}
		releases, resp, err := f.Client().Client.Repositories.ListReleases(ctx, repo.GetOwner().GetLogin(), repo.GetName(), opts)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				return &models.ReleaseList{}, nil
			}
			return nil, err
		}
		count += len(releases)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return &models.ReleaseList{Count: count}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&releasesFetcher{})
}
