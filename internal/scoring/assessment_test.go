package scoring

import "testing"

func TestMaturityTierFor(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, TierIncubation},
		{9, TierIncubation},
		{10, TierGrowth},
		{23, TierGrowth},
		{24, TierMature},
		{37, TierMature},
	}
	for _, tt := range tests {
		if got := MaturityTierFor(tt.total); got != tt.want {
			t.Errorf("MaturityTierFor(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestHealthLabelFor(t *testing.T) {
	tests := []struct {
		health int
		want   string
	}{
		{0, HealthUnhealthy},
		{5, HealthUnhealthy},
		{6, HealthModerate},
		{9, HealthModerate},
		{10, HealthHealthy},
		{12, HealthHealthy},
	}
	for _, tt := range tests {
		if got := HealthLabelFor(tt.health); got != tt.want {
			t.Errorf("HealthLabelFor(%d) = %q, want %q", tt.health, got, tt.want)
		}
	}
}

func TestAssessmentTotals(t *testing.T) {
	a := &Assessment{
		Owner:         "octo",
		Name:          "repo",
		Documentation: NewSubScore("Documentation Maturity", 5, 7, nil),
		Infrastructure: []SubScore{
			NewSubScore("Automated Tests", 3, 3, nil),
			NewSubScore("CI/CD Pipelines", 2, 3, nil),
		},
		Health: []SubScore{
			NewSubScore("Community Engagement", 2, 2, nil),
			NewSubScore("Activity Trend", 1, 2, nil),
		},
	}

	if got := a.FullName(); got != "octo/repo" {
		t.Errorf("FullName() = %q, want octo/repo", got)
	}
	if got := a.TotalInfrastructurePoints(); got != 5 {
		t.Errorf("TotalInfrastructurePoints() = %d, want 5", got)
	}
	if got := a.MaxInfrastructurePoints(); got != 6 {
		t.Errorf("MaxInfrastructurePoints() = %d, want 6", got)
	}
	if got := a.TotalHealthPoints(); got != 3 {
		t.Errorf("TotalHealthPoints() = %d, want 3", got)
	}
	if got := a.TotalPoints(); got != 13 {
		t.Errorf("TotalPoints() = %d, want 13", got)
	}
	if got := a.MaxPoints(); got != 17 {
		t.Errorf("MaxPoints() = %d, want 17", got)
	}
	if got := a.MaturityTier(); got != TierGrowth {
		t.Errorf("MaturityTier() = %q, want %q", got, TierGrowth)
	}
	if got := a.HealthLabel(); got != HealthUnhealthy {
		t.Errorf("HealthLabel() = %q, want %q", got, HealthUnhealthy)
	}
}

func TestNewSubScoreClamps(t *testing.T) {
	tests := []struct {
		name   string
		points int
		max    int
		want   int
	}{
		{"within range", 2, 3, 2},
		{"negative clamps to zero", -1, 3, 0},
		{"above max clamps to max", 9, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSubScore("x", tt.points, tt.max, nil)
			if s.Points != tt.want {
				t.Errorf("Points = %d, want %d", s.Points, tt.want)
			}
			if s.MaxPoints != tt.max {
				t.Errorf("MaxPoints = %d, want %d", s.MaxPoints, tt.max)
			}
		})
	}
}
