package scoring

import (
	"context"
	"testing"

	"repovitals/internal/data"

	"github.com/google/go-github/v81/github"
)

type registryStubScorer struct {
	id       string
	category Category
}

func (s *registryStubScorer) ID() string          { return s.id }
func (s *registryStubScorer) Title() string       { return s.id }
func (s *registryStubScorer) Description() string { return s.id }
func (s *registryStubScorer) Category() Category  { return s.category }

func (s *registryStubScorer) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return nil, nil
}

func (s *registryStubScorer) Score(ctx context.Context, repo *github.Repository, dc data.DataContext) ([]SubScore, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	Register(&registryStubScorer{id: "zz-stub-one", category: CategoryHealth})
	Register(&registryStubScorer{id: "zz-stub-two", category: CategoryInfrastructure})

	selected, err := Resolve("zz-stub-two, zz-stub-one")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(selected) != 2 {
		t.Fatalf("got %d scorers, want 2", len(selected))
	}
	// Selection preserves the order given in the selector.
	if selected[0].ID() != "zz-stub-two" || selected[1].ID() != "zz-stub-one" {
		t.Errorf("selection order = [%s, %s], want [zz-stub-two, zz-stub-one]", selected[0].ID(), selected[1].ID())
	}

	if _, err := Resolve("no-such-scorer"); err == nil {
		t.Error("Resolve with unknown ID should fail")
	}
}

func TestRegistryListSorted(t *testing.T) {
	all := List()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID() > all[i].ID() {
			t.Errorf("List() not sorted: %s before %s", all[i-1].ID(), all[i].ID())
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(&registryStubScorer{id: "zz-dup", category: CategoryHealth})
	Register(&registryStubScorer{id: "zz-dup", category: CategoryHealth})
}
