package scoring

// SubScore is a named, bounded point value with supporting detail.
// It is created once per scoring pass and never mutated afterwards.
type SubScore struct {
	Name      string         `json:"name"`
	Points    int            `json:"points"`
	MaxPoints int            `json:"max"`
	Details   map[string]any `json:"details,omitempty"`
}

// NewSubScore builds a SubScore with points clamped into [0, max].
func NewSubScore(name string, points, max int, details map[string]any) SubScore {
	return SubScore{
		Name:      name,
		Points:    clampPoints(points, max),
		MaxPoints: max,
		Details:   details,
	}
}

func clampPoints(points, max int) int {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}
