package scorers

import (
	"context"
	"testing"

	"repovitals/internal/data"
	"repovitals/internal/data/models"

	"github.com/google/go-github/v81/github"
)

func docContext(files *models.CommunityFiles, readme *models.ReadmeContent) data.DataContext {
	return data.NewMapDataContext(map[data.DependencyKey]any{
		data.DepCommunityProfile: files,
		data.DepReadme:           readme,
	})
}

func testRepo() *github.Repository {
	return &github.Repository{
		Owner: &github.User{Login: github.Ptr("octo")},
		Name:  github.Ptr("repo"),
	}
}

func TestDocumentationScorer(t *testing.T) {
	ctx := context.Background()
	s := &DocumentationScorer{}

	tests := []struct {
		name       string
		files      *models.CommunityFiles
		readme     *models.ReadmeContent
		wantPoints int
	}{
		{
			name:       "nothing present",
			files:      &models.CommunityFiles{},
			readme:     &models.ReadmeContent{},
			wantPoints: 0,
		},
		{
			name: "all files and setup instructions cap at 7",
			files: &models.CommunityFiles{
				Found:               true,
				Readme:              true,
				License:             true,
				Contributing:        true,
				SecurityPolicy:      true,
				CodeOfConduct:       true,
				IssueTemplate:       true,
				PullRequestTemplate: true,
			},
			readme:     &models.ReadmeContent{Found: true, Body: "## Installation\nrun make"},
			wantPoints: 7,
		},
		{
			name:       "readme fetched without profile flag earns no flag point",
			files:      &models.CommunityFiles{Found: true},
			readme:     &models.ReadmeContent{Found: true, Body: "plain description"},
			wantPoints: 0,
		},
		{
			name:       "readme fetched without profile flag still feeds setup check",
			files:      &models.CommunityFiles{Found: true},
			readme:     &models.ReadmeContent{Found: true, Body: "## Usage\nrun make"},
			wantPoints: 1,
		},
		{
			name:       "setup keyword is case-insensitive",
			files:      &models.CommunityFiles{},
			readme:     &models.ReadmeContent{Found: true, Body: "GETTING STARTED guide"},
			wantPoints: 1,
		},
		{
			name: "partial profile",
			files: &models.CommunityFiles{
				Found:   true,
				Readme:  true,
				License: true,
			},
			readme:     &models.ReadmeContent{Found: true},
			wantPoints: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := s.Score(ctx, testRepo(), docContext(tt.files, tt.readme))
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if len(subs) != 1 {
				t.Fatalf("got %d sub-scores, want 1", len(subs))
			}
			if subs[0].Points != tt.wantPoints {
				t.Errorf("Points = %d, want %d", subs[0].Points, tt.wantPoints)
			}
			if subs[0].MaxPoints != 7 {
				t.Errorf("MaxPoints = %d, want 7", subs[0].MaxPoints)
			}
		})
	}
}

func TestDocumentationScorerMissingDependency(t *testing.T) {
	s := &DocumentationScorer{}
	dc := data.NewMapDataContext(map[data.DependencyKey]any{})
	if _, err := s.Score(context.Background(), testRepo(), dc); err == nil {
		t.Error("Score with empty context should fail")
	}
}
