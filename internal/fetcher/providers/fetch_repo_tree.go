package providers

import (
	"context"
	"fmt"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type repoTreeFetcher struct{}

func (d *repoTreeFetcher) Key() data.DependencyKey {
	return data.DepRepoTree
}

func (d *repoTreeFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *repoTreeFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	branch, err := resolveDefaultBranch(ctx, repo, f)
	if err != nil {
		return nil, err
	}
	if branch == "" {
		return models.NewTreeListing(nil), nil
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	tree, resp, err := f.Client().Client.Git.GetTree(ctx, repo.GetOwner().GetLogin(), repo.GetName(), branch, true)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp.Response)
	}
	if err != nil {
		// 404: no such ref; 409: empty repository. Both mean "no tree".
		if resp != nil && (resp.StatusCode == 404 || resp.StatusCode == 409) {
			return models.NewTreeListing(nil), nil
		}
		return nil, err
	}

	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if p := entry.GetPath(); p != "" {
			paths = append(paths, p)
		}
	}
	return models.NewTreeListing(paths), nil
}

// resolveDefaultBranch returns the repository's default branch, falling back
// to a metadata fetch when the discovery object didn't carry it.
func resolveDefaultBranch(ctx context.Context, repo *github.Repository, f *fetcher.Fetcher) (string, error) {
	if branch := repo.GetDefaultBranch(); branch != "" {
		return branch, nil
	}

	val, err := f.Fetch(ctx, repo, data.DepRepoMetadata, nil)
	if err != nil {
		return "", fmt.Errorf("failed to resolve default branch: %w", err)
	}
	full, ok := val.(*github.Repository)
	if !ok {
		return "", fmt.Errorf("failed to resolve default branch: unexpected type %T for %s", val, data.DepRepoMetadata)
	}
	return full.GetDefaultBranch(), nil
}

func init() {
	fetcher.RegisterDataFetcher(&repoTreeFetcher{})
}
