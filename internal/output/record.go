package output

import (
	"fmt"

	"repovitals/internal/scoring"
)

// Record is the serializable form of one repository assessment, shaped for
// the JSON/NDJSON/PDF sinks. Detail maps and per-check breakdowns are only
// populated when the run requested details.
type Record struct {
	Repository     string         `json:"repository"`
	Documentation  CategoryReport `json:"documentation"`
	Infrastructure CategoryReport `json:"infrastructure"`
	Health         CategoryReport `json:"health"`
	Total          int            `json:"total"`
	MaxTotal       int            `json:"max_total"`
	Maturity       string         `json:"maturity"`
}

// CategoryReport is one scoring category within a Record.
type CategoryReport struct {
	Score     int                `json:"score"`
	Max       int                `json:"max"`
	Label     string             `json:"label,omitempty"`
	Details   map[string]any     `json:"details,omitempty"`
	Breakdown []scoring.SubScore `json:"breakdown,omitempty"`
}

// NewRecord flattens an assessment into a Record. When details is false,
// detail maps and breakdowns are omitted so aggregate output stays compact.
func NewRecord(a *scoring.Assessment, details bool) Record {
	rec := Record{
		Repository: a.FullName(),
		Documentation: CategoryReport{
			Score: a.Documentation.Points,
			Max:   a.Documentation.MaxPoints,
		},
		Infrastructure: CategoryReport{
			Score: a.TotalInfrastructurePoints(),
			Max:   a.MaxInfrastructurePoints(),
		},
		Health: CategoryReport{
			Score: a.TotalHealthPoints(),
			Max:   a.MaxHealthPoints(),
			Label: a.HealthLabel(),
		},
		Total:    a.TotalPoints(),
		MaxTotal: a.MaxPoints(),
		Maturity: a.MaturityTier(),
	}
	if details {
		rec.Documentation.Details = a.Documentation.Details
		rec.Infrastructure.Breakdown = a.Infrastructure
		rec.Health.Breakdown = a.Health
	}
	return rec
}

// ScoreCell renders "earned/max" for table and PDF cells.
func ScoreCell(score, max int) string {
	return fmt.Sprintf("%d/%d", score, max)
}
