package data

// DependencyKey uniquely identifies a GitHub data dependency.
type DependencyKey string

// FetchScope describes the cache scope of a dependency.
type FetchScope string

const (
	// ScopeRepo caches per repository.
	ScopeRepo FetchScope = "repo"
	// ScopeOrg caches per owner account.
	ScopeOrg FetchScope = "org"
)

// DependencyRequest represents a request for a specific dependency with optional parameters.
type DependencyRequest struct {
	Key    DependencyKey
	Params map[string]string
}
