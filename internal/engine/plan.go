package engine

import (
	"context"
	"fmt"
	"sort"

	"repovitals/internal/data"
	"repovitals/internal/scoring"
)

type AssessmentPlan struct {
	RepoPlans map[int64]*RepoPlan
}

type RepoPlan struct {
	Repo         RepositoryRef
	Dependencies map[data.DependencyKey]data.DependencyRequest
	Scorers      []scoring.Scorer
}

func NewAssessmentPlan() *AssessmentPlan {
	return &AssessmentPlan{
		RepoPlans: make(map[int64]*RepoPlan),
	}
}

// AddRepo records one repository and the deduplicated union of all dependency
// keys its selected scorers declare. Shared keys (the tree, workflow texts)
// appear once, so they are fetched once per repository.
func (p *AssessmentPlan) AddRepo(ctx context.Context, repo RepositoryRef, selected []scoring.Scorer) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}
	if p == nil {
		return fmt.Errorf("assessment plan is nil")
	}
	if p.RepoPlans == nil {
		return fmt.Errorf("assessment plan is not initialized (RepoPlans is nil); use NewAssessmentPlan")
	}
	if repo.Repo == nil {
		return fmt.Errorf("repo object is nil for %s/%s (id=%d)", repo.Owner, repo.Name, repo.ID)
	}

	rp := &RepoPlan{
		Repo:         repo,
		Dependencies: make(map[data.DependencyKey]data.DependencyRequest),
		Scorers:      selected,
	}

	for _, s := range selected {
		deps, err := s.Dependencies(ctx, repo.Repo)
		if err != nil {
			return fmt.Errorf("failed to get dependencies for scorer %s: %w", s.ID(), err)
		}

		for _, d := range deps {
			if _, exists := rp.Dependencies[d]; !exists {
				rp.Dependencies[d] = data.DependencyRequest{Key: d}
			}
		}
	}

	p.RepoPlans[repo.ID] = rp
	return nil
}

// SortedDependencies returns the list of dependency keys sorted by priority (P0 first).
func (rp *RepoPlan) SortedDependencies() []data.DependencyKey {
	keys := make([]data.DependencyKey, 0, len(rp.Dependencies))
	for k := range rp.Dependencies {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		p1 := data.Priority(keys[i])
		p2 := data.Priority(keys[j])
		if p1 != p2 {
			return p1 < p2
		}
		return keys[i] < keys[j] // Stable sort for same priority
	})

	return keys
}
