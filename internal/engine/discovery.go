package engine

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"repovitals/internal/config"
	gh "repovitals/internal/github"

	"github.com/google/go-github/v81/github"
)

const defaultDiscoveryRepoLimit = 1000

type RepositoryRef struct {
	Owner string
	Name  string
	ID    int64
	Repo  *github.Repository // Keep the full object if we have it
}

func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ResolveRepos enumerates the repositories targeted by the config: explicit
// --repos specs, an organization account, or a user account. Config validation
// guarantees at most one of org/user is set.
func ResolveRepos(ctx context.Context, client *gh.Client, cfg *config.Config) ([]RepositoryRef, error) {
	if cfg.Targeting.Org != "" {
		refs, err := listOrgRepoRefs(ctx, client, cfg.Targeting.Org, computeDiscoveryLimit(cfg))
		if err != nil {
			return nil, err
		}
		return dedupeRefs(refs), nil
	}

	if cfg.Targeting.User != "" {
		refs, err := listUserRepoRefs(ctx, client, cfg.Targeting.User, computeDiscoveryLimit(cfg))
		if err != nil {
			return nil, err
		}
		return dedupeRefs(refs), nil
	}

	if len(cfg.Targeting.Repos) > 0 {
		refs, err := resolveExplicitRepoRefs(ctx, client, cfg.Targeting.Repos)
		if err != nil {
			return nil, err
		}
		return dedupeRefs(refs), nil
	}

	return nil, nil
}

func computeDiscoveryLimit(cfg *config.Config) int {
	limit := defaultDiscoveryRepoLimit
	if cfg.Targeting.Limit > 0 && cfg.Targeting.Limit < limit {
		// Account listings can only shrink after filtering, so the discovery
		// cap must never be tighter than the post-filter limit when policies
		// might drop repos. Fetch the full default when any policy excludes.
		if cfg.Targeting.Archived == "include" && cfg.Targeting.Forks == "include" {
			limit = cfg.Targeting.Limit
		}
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

func listOrgRepoRefs(ctx context.Context, client *gh.Client, org string, limit int) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, min(limit, 100))

	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := client.Client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list org repos: %w", err)
		}
		for _, repo := range repos {
			if len(refs) >= limit {
				break
			}
			refs = append(refs, repoRef(repo))
		}
		if len(refs) >= limit {
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

func listUserRepoRefs(ctx context.Context, client *gh.Client, user string, limit int) ([]RepositoryRef, error) {
	// If the requested user matches the authenticated token owner, use the
	// authenticated endpoint so private repos can be included.
	useAuthed := false
	if me, _, err := client.Client.Users.Get(ctx, ""); err == nil {
		if strings.EqualFold(me.GetLogin(), user) {
			useAuthed = true
		}
	}
	if useAuthed {
		return listAuthenticatedUserRepoRefs(ctx, client, limit)
	}
	return listPublicUserRepoRefs(ctx, client, user, limit)
}

func listAuthenticatedUserRepoRefs(ctx context.Context, client *gh.Client, limit int) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, min(limit, 100))

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
		Visibility:  "all",
		Affiliation: "owner",
	}
	for {
		repos, resp, err := client.Client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list authenticated user repos: %w", err)
		}
		for _, repo := range repos {
			if len(refs) >= limit {
				break
			}
			refs = append(refs, repoRef(repo))
		}
		if len(refs) >= limit {
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

func listPublicUserRepoRefs(ctx context.Context, client *gh.Client, user string, limit int) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, min(limit, 100))

	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
		Type:        "all",
	}
	for {
		repos, resp, err := client.Client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list user repos: %w", err)
		}
		for _, repo := range repos {
			if len(refs) >= limit {
				break
			}
			refs = append(refs, repoRef(repo))
		}
		if len(refs) >= limit {
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

func resolveExplicitRepoRefs(ctx context.Context, client *gh.Client, specs []string) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, len(specs))

	for _, raw := range specs {
		spec := strings.TrimSpace(raw)
		if spec == "" {
			continue
		}
		owner, name, err := config.SplitOwnerRepo(spec)
		if err != nil {
			return nil, err
		}
		repo, _, err := client.Client.Repositories.Get(ctx, owner, name)
		if err != nil {
			// One unresolvable repo must not sink the whole batch; log it and
			// keep assessing the rest.
			fmt.Fprintf(os.Stderr, "Error resolving repo %s/%s: %v\n", owner, name, err)
			continue
		}
		refs = append(refs, repoRef(repo))
	}

	return refs, nil
}

func repoRef(repo *github.Repository) RepositoryRef {
	return RepositoryRef{
		Owner: repo.GetOwner().GetLogin(),
		Name:  repo.GetName(),
		ID:    repo.GetID(),
		Repo:  repo,
	}
}

func dedupeRefs(in []RepositoryRef) []RepositoryRef {
	if len(in) <= 1 {
		return in
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]RepositoryRef, 0, len(in))
	for _, r := range in {
		key := ""
		if r.ID != 0 {
			key = "id:" + strconv.FormatInt(r.ID, 10)
		} else if r.Repo != nil {
			key = "full:" + r.Repo.GetFullName()
		} else if r.Owner != "" && r.Name != "" {
			key = "full:" + r.Owner + "/" + r.Name
		}
		if key == "" {
			// If we can't construct a stable key, keep the entry.
			out = append(out, r)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
