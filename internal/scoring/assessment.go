package scoring

// Maturity tiers derived from the total score. Boundaries are inclusive on
// the lower bound of each named bucket.
const (
	TierIncubation = "Incubation"
	TierGrowth     = "Growth"
	TierMature     = "Mature"

	growthThreshold = 10
	matureThreshold = 24
)

// Health labels derived from the health category total.
const (
	HealthHealthy   = "Healthy"
	HealthModerate  = "Moderate"
	HealthUnhealthy = "Unhealthy"

	healthyThreshold  = 10
	moderateThreshold = 6
)

// Assessment is the full scoring result for one repository: one
// documentation sub-score, the ordered infrastructure sub-scores, and the
// ordered health sub-scores. Totals and classifications are derived on each
// access so they can never disagree with the sub-scores.
type Assessment struct {
	Owner string
	Name  string

	Documentation  SubScore
	Infrastructure []SubScore
	Health         []SubScore
}

func (a *Assessment) FullName() string {
	return a.Owner + "/" + a.Name
}

func (a *Assessment) TotalInfrastructurePoints() int {
	return sumPoints(a.Infrastructure)
}

func (a *Assessment) MaxInfrastructurePoints() int {
	return sumMax(a.Infrastructure)
}

func (a *Assessment) TotalHealthPoints() int {
	return sumPoints(a.Health)
}

func (a *Assessment) MaxHealthPoints() int {
	return sumMax(a.Health)
}

func (a *Assessment) TotalPoints() int {
	return a.Documentation.Points + a.TotalInfrastructurePoints() + a.TotalHealthPoints()
}

func (a *Assessment) MaxPoints() int {
	return a.Documentation.MaxPoints + a.MaxInfrastructurePoints() + a.MaxHealthPoints()
}

func (a *Assessment) MaturityTier() string {
	return MaturityTierFor(a.TotalPoints())
}

func (a *Assessment) HealthLabel() string {
	return HealthLabelFor(a.TotalHealthPoints())
}

// MaturityTierFor maps a total score to its maturity tier.
func MaturityTierFor(total int) string {
	switch {
	case total < growthThreshold:
		return TierIncubation
	case total < matureThreshold:
		return TierGrowth
	default:
		return TierMature
	}
}

// HealthLabelFor maps a health category total to its label.
func HealthLabelFor(health int) string {
	switch {
	case health >= healthyThreshold:
		return HealthHealthy
	case health >= moderateThreshold:
		return HealthModerate
	default:
		return HealthUnhealthy
	}
}

func sumPoints(scores []SubScore) int {
	total := 0
	for _, s := range scores {
		total += s.Points
	}
	return total
}

func sumMax(scores []SubScore) int {
	total := 0
	for _, s := range scores {
		total += s.MaxPoints
	}
	return total
}
