package engine

import (
	"strings"

	"repovitals/internal/config"
)

// FilterRepos applies the archived/forks policies and the repo limit to a
// discovered repository list. Explicitly targeted repos bypass this entirely.
func FilterRepos(repos []RepositoryRef, cfg *config.Config) []RepositoryRef {
	if cfg == nil {
		panic("engine.FilterRepos: cfg must not be nil")
	}

	archivedPolicy := strings.TrimSpace(cfg.Targeting.Archived)
	if archivedPolicy == "" {
		archivedPolicy = "include"
	}
	forksPolicy := strings.TrimSpace(cfg.Targeting.Forks)
	if forksPolicy == "" {
		forksPolicy = "include"
	}

	var filtered []RepositoryRef
	for _, r := range repos {
		if archivedPolicy == "exclude" && r.Repo.GetArchived() {
			continue
		}
		if archivedPolicy == "only" && !r.Repo.GetArchived() {
			continue
		}

		if forksPolicy == "exclude" && r.Repo.GetFork() {
			continue
		}
		if forksPolicy == "only" && !r.Repo.GetFork() {
			continue
		}

		filtered = append(filtered, r)
	}

	if cfg.Targeting.Limit > 0 && len(filtered) > cfg.Targeting.Limit {
		filtered = filtered[:cfg.Targeting.Limit]
	}

	return filtered
}
