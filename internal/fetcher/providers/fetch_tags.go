package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type tagsFetcher struct{}

func (d *tagsFetcher) Key() data.DependencyKey {
	return data.DepRepoTags
}

func (d *tagsFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *tagsFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	count := 0
	opts := &github.ListOptions{PerPage: 100}
	for {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return nil, err
		}
		tags, resp, err := f.Client().Client.Repositories.ListTags(ctx, repo.GetOwner().GetLogin(), repo.GetName(), opts)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				return &models.TagList{}, nil
			}
			return nil, err
		}
		count += len(tags)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return &models.TagList{Count: count}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&tagsFetcher{})
}
