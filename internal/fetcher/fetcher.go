package fetcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"repovitals/internal/data"
	gh "repovitals/internal/github"

	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/singleflight"
)

// Fetcher resolves dependency keys to fetched GitHub data.
//
// Results are cached per run and deduplicated with singleflight, so the tree
// and workflow texts are fetched once per repository even though several
// sub-checks consume them.
type Fetcher struct {
	client *gh.Client
	budget *RequestBudget
	group  singleflight.Group
	cache  sync.Map
}

type fetchChainKey struct{}

func NewFetcher(client *gh.Client, budget *RequestBudget) *Fetcher {
	return &Fetcher{
		client: client,
		budget: budget,
	}
}

func (f *Fetcher) Budget() *RequestBudget {
	return f.budget
}

func (f *Fetcher) Client() *gh.Client {
	return f.client
}

func (f *Fetcher) Fetch(ctx context.Context, repo *github.Repository, key data.DependencyKey, params map[string]string) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher")
	}
	if f.client == nil || f.client.Client == nil {
		return nil, fmt.Errorf("Fetch: nil GitHub client (use NewFetcher)")
	}
	if f.budget == nil {
		return nil, fmt.Errorf("Fetch: nil request budget (use NewFetcher)")
	}
	if repo == nil {
		return nil, fmt.Errorf("Fetch: nil repo")
	}
	if key == "" {
		return nil, fmt.Errorf("Fetch: empty dependency key")
	}
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("Fetch: repo owner/name is required")
	}

	fetchImpl, ok := ResolveDataFetcher(key)
	if !ok {
		return nil, fmt.Errorf("unsupported dependency key: %s", key)
	}

	// Cache key (must be deterministic)
	flightKey, err := makeFlightKey(repo, fetchImpl.Scope(), key, params)
	if err != nil {
		return nil, err
	}

	// Providers may fetch other keys (e.g. metadata for the default branch);
	// track the chain so a provider bug can't recurse forever.
	ctx, err = withFetchChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	if val, ok := f.cache.Load(flightKey); ok {
		return val, nil
	}

	val, err, _ := f.group.Do(flightKey, func() (interface{}, error) {
		return fetchImpl.Fetch(ctx, repo, params, f)
	})

	if err == nil {
		f.cache.Store(flightKey, val)
	}

	return val, err
}

func withFetchChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getFetchChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Fetch: dependency cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, fetchChainKey{}, updated), nil
}

func getFetchChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	chain, ok := ctx.Value(fetchChainKey{}).([]string)
	if !ok {
		return nil
	}
	return chain
}

func makeFlightKey(repo *github.Repository, scope data.FetchScope, key data.DependencyKey, params map[string]string) (string, error) {
	var prefix string
	switch scope {
	case data.ScopeOrg:
		owner := strings.ToLower(repo.GetOwner().GetLogin())
		if owner == "" {
			return "", fmt.Errorf("Fetch: repo owner login is required for org-scoped dependency: %s", key)
		}
		prefix = owner
	case data.ScopeRepo:
		repoID := repo.GetFullName()
		if repoID == "" {
			owner := strings.ToLower(repo.GetOwner().GetLogin())
			name := strings.ToLower(repo.GetName())
			if owner == "" || name == "" {
				return "", fmt.Errorf("Fetch: repo owner/name is required for repo-scoped dependency: %s", key)
			}
			repoID = owner + "/" + name
		}
		prefix = strings.ToLower(repoID)
	default:
		return "", fmt.Errorf("Fetch: unknown fetch scope %q for dependency: %s", scope, key)
	}

	return prefix + ":" + string(key) + ":" + stableParamsKey(params), nil
}

func stableParamsKey(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
