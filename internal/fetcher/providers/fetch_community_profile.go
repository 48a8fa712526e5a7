package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type communityProfileFetcher struct{}

func (d *communityProfileFetcher) Key() data.DependencyKey {
	return data.DepCommunityProfile
}

func (d *communityProfileFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *communityProfileFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	metrics, resp, err := f.Client().Client.Repositories.GetCommunityHealthMetrics(ctx, owner, name)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp.Response)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			// No community profile: every flag reads as absent.
			return &models.CommunityFiles{}, nil
		}
		return nil, err
	}

	cf := &models.CommunityFiles{Found: true}
	if files := metrics.Files; files != nil {
		cf.Readme = files.Readme != nil
		cf.License = files.License != nil
		cf.Contributing = files.Contributing != nil
		cf.CodeOfConduct = files.CodeOfConduct != nil || files.CodeOfConductFile != nil
		cf.IssueTemplate = files.IssueTemplate != nil
		cf.PullRequestTemplate = files.PullRequestTemplate != nil
	}

	// The community/profile payload does not report a security policy flag;
	// probe the standard locations the same way GitHub's UI resolves them.
	check := func(path string) (exists bool, err error) {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return false, err
		}
		_, _, resp, err := f.Client().Client.Repositories.GetContents(ctx, owner, name, path, nil)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}

	for _, path := range []string{"SECURITY.md", ".github/SECURITY.md"} {
		exists, err := check(path)
		if err != nil {
			return nil, err
		}
		if exists {
			cf.SecurityPolicy = true
			break
		}
	}

	return cf, nil
}

func init() {
	fetcher.RegisterDataFetcher(&communityProfileFetcher{})
}
