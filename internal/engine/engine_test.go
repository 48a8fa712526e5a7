package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"repovitals/internal/config"
	"repovitals/internal/data"
	"repovitals/internal/scoring"
)

func TestBuildAssessmentRoutesCategories(t *testing.T) {
	repo := ref("assessed", false, false)
	rp := &RepoPlan{
		Repo: repo,
		Scorers: []scoring.Scorer{
			&stubScorer{
				id:       "docs",
				category: scoring.CategoryDocumentation,
				deps:     []data.DependencyKey{data.DepReadme},
				score: func(dc data.DataContext) ([]scoring.SubScore, error) {
					dc.Get(data.DepReadme)
					return []scoring.SubScore{scoring.NewSubScore("Documentation Maturity", 4, 7, nil)}, nil
				},
			},
			&stubScorer{
				id:       "infra",
				category: scoring.CategoryInfrastructure,
				deps:     []data.DependencyKey{data.DepRepoTree},
				score: func(dc data.DataContext) ([]scoring.SubScore, error) {
					dc.Get(data.DepRepoTree)
					return []scoring.SubScore{
						scoring.NewSubScore("Automated Tests", 2, 3, nil),
						scoring.NewSubScore("CI/CD Pipelines", 1, 3, nil),
					}, nil
				},
			},
		},
	}
	dc := data.NewMapDataContext(map[data.DependencyKey]any{
		data.DepReadme:   "x",
		data.DepRepoTree: "y",
	})

	a, err := buildAssessment(context.Background(), rp, dc, nil)
	if err != nil {
		t.Fatalf("buildAssessment: %v", err)
	}
	if a.Documentation.Points != 4 {
		t.Errorf("Documentation.Points = %d, want 4", a.Documentation.Points)
	}
	if len(a.Infrastructure) != 2 {
		t.Errorf("got %d infrastructure sub-scores, want 2", len(a.Infrastructure))
	}
	if a.TotalPoints() != 7 {
		t.Errorf("TotalPoints() = %d, want 7", a.TotalPoints())
	}
}

func TestBuildAssessmentSurfacesDependencyFailure(t *testing.T) {
	repo := ref("broken", false, false)
	rp := &RepoPlan{
		Repo: repo,
		Scorers: []scoring.Scorer{
			&stubScorer{id: "infra", category: scoring.CategoryInfrastructure, deps: []data.DependencyKey{data.DepRepoTree}},
		},
	}
	dc := data.NewMapDataContext(map[data.DependencyKey]any{})
	depErrs := map[data.DependencyKey]error{
		data.DepRepoTree: errors.New("boom"),
	}

	_, err := buildAssessment(context.Background(), rp, dc, depErrs)
	if err == nil {
		t.Fatal("buildAssessment should fail when a declared dependency failed to fetch")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should include the fetch failure", err)
	}
}

func TestBuildAssessmentRejectsUndeclaredAccess(t *testing.T) {
	repo := ref("sneaky", false, false)
	rp := &RepoPlan{
		Repo: repo,
		Scorers: []scoring.Scorer{
			&stubScorer{
				id:       "infra",
				category: scoring.CategoryInfrastructure,
				deps:     []data.DependencyKey{data.DepRepoTree},
				score: func(dc data.DataContext) ([]scoring.SubScore, error) {
					dc.Get(data.DepRepoMetadata) // not declared
					return nil, nil
				},
			},
		},
	}
	dc := data.NewMapDataContext(map[data.DependencyKey]any{
		data.DepRepoTree:     "y",
		data.DepRepoMetadata: "z",
	})

	_, err := buildAssessment(context.Background(), rp, dc, nil)
	if err == nil {
		t.Fatal("buildAssessment should fail on undeclared dependency access")
	}
	if !strings.Contains(err.Error(), "undeclared") {
		t.Errorf("error %q should mention undeclared access", err)
	}
}

func TestUndeclaredDependencyAccesses(t *testing.T) {
	declared := []data.DependencyKey{data.DepRepoTree}
	accessed := []data.DependencyKey{data.DepRepoTree, data.DepRepoMetadata, data.DepReadme}

	out := undeclaredDependencyAccesses(accessed, declared)
	if len(out) != 2 {
		t.Fatalf("got %d undeclared keys, want 2", len(out))
	}
	// Sorted output keeps error messages deterministic.
	if out[0] > out[1] {
		t.Errorf("undeclared keys not sorted: %v", out)
	}
}

func TestExitCodeForRun(t *testing.T) {
	if got := exitCodeForRun(false); got != 0 {
		t.Errorf("exitCodeForRun(false) = %d, want 0", got)
	}
	if got := exitCodeForRun(true); got != 1 {
		t.Errorf("exitCodeForRun(true) = %d, want 1", got)
	}
}

func TestIsExplicitReposOnly(t *testing.T) {
	cfg := config.New()
	cfg.Targeting.Repos = []string{"octo/repo"}
	if !isExplicitReposOnly(cfg) {
		t.Error("explicit repos without org/user should be explicit-only")
	}

	cfg.Targeting.Org = "my-org"
	if isExplicitReposOnly(cfg) {
		t.Error("org targeting is not explicit-only")
	}
}
