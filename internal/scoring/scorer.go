package scoring

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"repovitals/internal/data"

	"github.com/google/go-github/v81/github"
)

// Category identifies which assessment category a scorer's sub-scores
// belong to.
type Category string

const (
	CategoryDocumentation  Category = "documentation"
	CategoryInfrastructure Category = "infrastructure"
	CategoryHealth         Category = "health"
)

// Scorer computes the sub-scores of one assessment category.
type Scorer interface {
	ID() string
	Title() string
	Description() string
	Category() Category

	// Dependencies declares the GitHub data this scorer needs for a repo.
	Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error)

	// Score computes the category's sub-scores using only DataContext.
	// Scorers MUST NOT call GitHub APIs.
	Score(ctx context.Context, repo *github.Repository, dc data.DataContext) ([]SubScore, error)
}

var (
	registry = make(map[string]Scorer)
	mu       sync.RWMutex
)

func Register(s Scorer) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[s.ID()]; exists {
		panic(fmt.Sprintf("scorer %s already registered", s.ID()))
	}
	registry[s.ID()] = s
}

func List() []Scorer {
	mu.RLock()
	defer mu.RUnlock()
	var scorers []Scorer
	for _, s := range registry {
		scorers = append(scorers, s)
	}
	sort.Slice(scorers, func(i, j int) bool {
		return scorers[i].ID() < scorers[j].ID()
	})
	return scorers
}

func Resolve(selector string) ([]Scorer, error) {
	mu.RLock()
	defer mu.RUnlock()

	if selector == "" {
		return List(), nil
	}

	ids := strings.Split(selector, ",")
	var selected []Scorer
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if s, ok := registry[id]; ok {
			selected = append(selected, s)
		} else {
			return nil, fmt.Errorf("scorer not found: %s", id)
		}
	}
	return selected, nil
}
