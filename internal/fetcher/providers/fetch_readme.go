package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type readmeFetcher struct{}

func (d *readmeFetcher) Key() data.DependencyKey {
	return data.DepReadme
}

func (d *readmeFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *readmeFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	file, resp, err := f.Client().Client.Repositories.GetReadme(ctx, repo.GetOwner().GetLogin(), repo.GetName(), nil)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp.Response)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return &models.ReadmeContent{}, nil
		}
		return nil, err
	}

	body, err := file.GetContent()
	if err != nil {
		// A README we can't decode still counts as present.
		return &models.ReadmeContent{Found: true, Path: file.GetPath()}, nil
	}
	return &models.ReadmeContent{Found: true, Path: file.GetPath(), Body: body}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&readmeFetcher{})
}
