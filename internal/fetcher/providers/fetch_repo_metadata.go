package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type repoMetadataFetcher struct{}

func (d *repoMetadataFetcher) Key() data.DependencyKey {
	return data.DepRepoMetadata
}

func (d *repoMetadataFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *repoMetadataFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	// Discovery usually hands us a fully-populated repository object already;
	// skip the round trip when the counters we score on are present.
	if repo.StargazersCount != nil && repo.PushedAt != nil {
		return repo, nil
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	full, resp, err := f.Client().Client.Repositories.Get(ctx, repo.GetOwner().GetLogin(), repo.GetName())
	if resp != nil {
		f.Budget().UpdateFromResponse(resp.Response)
	}
	if err != nil {
		return nil, err
	}
	return full, nil
}

func init() {
	fetcher.RegisterDataFetcher(&repoMetadataFetcher{})
}
