package scorers

import (
	"fmt"

	"repovitals/internal/data"
)

// depValue pulls a typed dependency out of the DataContext, failing loudly
// when the engine handed us something missing or of the wrong shape.
func depValue[T any](dc data.DataContext, key data.DependencyKey) (T, error) {
	var zero T
	val, ok := dc.Get(key)
	if !ok {
		return zero, fmt.Errorf("dependency missing: %s", key)
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("dependency %s: unexpected type %T", key, val)
	}
	return typed, nil
}
