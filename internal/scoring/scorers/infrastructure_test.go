package scorers

import (
	"context"
	"testing"

	"repovitals/internal/data"
	"repovitals/internal/data/models"
	"repovitals/internal/scoring"
)

func infraContext(paths []string, workflows []string, tags, releases int) data.DataContext {
	return data.NewMapDataContext(map[data.DependencyKey]any{
		data.DepRepoTree:      models.NewTreeListing(paths),
		data.DepWorkflowTexts: models.NewWorkflowTexts(workflows),
		data.DepRepoTags:      &models.TagList{Count: tags},
		data.DepRepoReleases:  &models.ReleaseList{Count: releases},
	})
}

func subScoreByName(t *testing.T, subs []scoring.SubScore, name string) scoring.SubScore {
	t.Helper()
	for _, s := range subs {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("sub-score %q not found", name)
	return scoring.SubScore{}
}

func TestInfrastructureScorerEmptyRepo(t *testing.T) {
	s := &InfrastructureScorer{}
	subs, err := s.Score(context.Background(), testRepo(), infraContext(nil, nil, 0, 0))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(subs) != 9 {
		t.Fatalf("got %d sub-scores, want 9", len(subs))
	}
	total, max := 0, 0
	for _, sub := range subs {
		total += sub.Points
		max += sub.MaxPoints
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if max != 18 {
		t.Errorf("max = %d, want 18", max)
	}
}

func TestScoreAutomatedTests(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		workflows []string
		want      int
	}{
		{"no tests", []string{"main.go"}, nil, 0},
		{"tests dir", []string{"tests/test_core.py"}, nil, 2},
		{"go test file", []string{"pkg/server_test.go"}, nil, 2},
		{"spec file", []string{"src/app.spec.ts"}, nil, 2},
		{"ci only", []string{"main.go"}, []string{"run: pytest"}, 1},
		{"files and ci", []string{"tests/a.py"}, []string{"run: go test ./..."}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := scoreAutomatedTests(models.NewTreeListing(tt.paths), models.NewWorkflowTexts(tt.workflows))
			if sub.Points != tt.want {
				t.Errorf("Points = %d, want %d", sub.Points, tt.want)
			}
		})
	}
}

func TestScoreCICDPipelines(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		workflows []string
		want      int
	}{
		{"nothing", nil, nil, 0},
		{"workflow dir only", []string{".github/workflows/ci.yml"}, nil, 1},
		{"dir plus build", []string{".github/workflows/ci.yml"}, []string{"run: docker build ."}, 2},
		{"dir build release", []string{".github/workflows/ci.yml"}, []string{"run: docker build .\nuses: softprops/action-gh-release@v2"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := scoreCICDPipelines(models.NewTreeListing(tt.paths), models.NewWorkflowTexts(tt.workflows))
			if sub.Points != tt.want {
				t.Errorf("Points = %d, want %d", sub.Points, tt.want)
			}
		})
	}
}

func TestScoreLinting(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		workflows []string
		want      int
	}{
		{"none", nil, nil, 0},
		{"config only", []string{".golangci.yml"}, nil, 1},
		{"ci only", nil, []string{"run: eslint src"}, 1},
		{"both", []string{".eslintrc.json"}, []string{"run: eslint src"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := scoreLinting(models.NewTreeListing(tt.paths), models.NewWorkflowTexts(tt.workflows))
			if sub.Points != tt.want {
				t.Errorf("Points = %d, want %d", sub.Points, tt.want)
			}
		})
	}
}

func TestScoreReleaseManagement(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		tags     int
		releases int
		want     int
	}{
		{"nothing", nil, 0, 0, 0},
		{"tags only", nil, 3, 0, 1},
		{"releases only", nil, 0, 2, 1},
		{"changelog only", []string{"CHANGELOG.md"}, 0, 0, 1},
		{"tags and releases", nil, 3, 2, 2},
		{"tags and changelog", []string{"CHANGELOG.md"}, 3, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := scoreReleaseManagement(models.NewTreeListing(tt.paths), &models.TagList{Count: tt.tags}, &models.ReleaseList{Count: tt.releases})
			if sub.Points != tt.want {
				t.Errorf("Points = %d, want %d", sub.Points, tt.want)
			}
		})
	}
}

func TestScoreInfraAsCode(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  int
	}{
		{"none", []string{"main.go"}, 0},
		{"dockerfile", []string{"Dockerfile"}, 1},
		{"k8s dir", []string{"k8s/deployment.yaml"}, 1},
		{"deploy dir", []string{"deploy/chart.yaml"}, 1},
		{"terraform dir", []string{"terraform/main.tf"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := scoreInfraAsCode(models.NewTreeListing(tt.paths))
			if sub.Points != tt.want {
				t.Errorf("Points = %d, want %d", sub.Points, tt.want)
			}
		})
	}
}

func TestScoreSecurityDependencyPlatform(t *testing.T) {
	workflows := models.NewWorkflowTexts([]string{"uses: github/codeql-action/analyze@v3"})
	if sub := scoreSecurityScanning(workflows); sub.Points != 2 {
		t.Errorf("security scanning Points = %d, want 2", sub.Points)
	}
	if sub := scoreSecurityScanning(models.NewWorkflowTexts(nil)); sub.Points != 0 {
		t.Errorf("security scanning without hints Points = %d, want 0", sub.Points)
	}

	depTree := models.NewTreeListing([]string{".github/dependabot.yml"})
	if sub := scoreDependencyUpdates(depTree); sub.Points != 2 {
		t.Errorf("dependency updates Points = %d, want 2", sub.Points)
	}

	ciTree := models.NewTreeListing([]string{".gitlab-ci.yml"})
	if sub := scorePlatformIntegration(ciTree); sub.Points != 1 {
		t.Errorf("platform integration Points = %d, want 1", sub.Points)
	}

	buildTree := models.NewTreeListing([]string{"pyproject.toml"})
	if sub := scoreBuildPackaging(buildTree); sub.Points != 2 {
		t.Errorf("build packaging Points = %d, want 2", sub.Points)
	}
}
