package providers

import (
	"context"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type workflowTextsFetcher struct{}

func (d *workflowTextsFetcher) Key() data.DependencyKey {
	return data.DepWorkflowTexts
}

func (d *workflowTextsFetcher) Scope() data.FetchScope {
	return data.ScopeRepo
}

func (d *workflowTextsFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()

	var paths []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return nil, err
		}
		workflows, resp, err := f.Client().Client.Actions.ListWorkflows(ctx, owner, name, opts)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				return models.NewWorkflowTexts(nil), nil
			}
			return nil, err
		}
		for _, wf := range workflows.Workflows {
			if p := wf.GetPath(); p != "" {
				paths = append(paths, p)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	var texts []string
	for _, path := range paths {
		if err := f.Budget().Acquire(ctx, 1); err != nil {
			return nil, err
		}
		file, _, resp, err := f.Client().Client.Repositories.GetContents(ctx, owner, name, path, nil)
		if resp != nil {
			f.Budget().UpdateFromResponse(resp.Response)
		}
		if err != nil {
			// Dynamic or deleted workflow definitions resolve to no file.
			if resp != nil && resp.StatusCode == 404 {
				continue
			}
			return nil, err
		}
		if file == nil {
			continue
		}
		content, err := file.GetContent()
		if err != nil || content == "" {
			continue
		}
		texts = append(texts, content)
	}

	return models.NewWorkflowTexts(texts), nil
}

func init() {
	fetcher.RegisterDataFetcher(&workflowTextsFetcher{})
}
