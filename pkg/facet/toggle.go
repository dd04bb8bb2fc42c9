package facet

import (
	"slices"

	"github.com/matst80/learn-finder/pkg/types"
)

// Toggle returns a copy of active with value added to group when enabled,
// removed otherwise. Repeating a toggle has no further effect.
func Toggle(active types.ActiveFacets, group, value string, enabled bool) types.ActiveFacets {
	result := active.Clone()
	values := result[group]
	idx := slices.Index(values, value)
	switch {
	case enabled && idx == -1:
		values = append(values, value)
	case !enabled && idx != -1:
		values = slices.Delete(values, idx, idx+1)
	}
	if len(values) == 0 {
		delete(result, group)
	} else {
		result[group] = values
	}
	return result
}

// Set replaces every value of a group, e.g. when a single select control
// changes.
func Set(active types.ActiveFacets, group string, values ...string) types.ActiveFacets {
	result := active.Clone()
	result[group] = values
	return result.Canonical()
}

// Clear returns an empty selection for every group.
func Clear() types.ActiveFacets {
	return types.ActiveFacets{}
}
