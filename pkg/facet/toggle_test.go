package facet

import (
	"slices"
	"testing"

	"github.com/matst80/learn-finder/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	active := types.ActiveFacets{}
	active = Toggle(active, types.TopicsFacet, "Science", true)
	active = Toggle(active, types.TopicsFacet, "Law", true)
	assert.Equal(t, []string{"Science", "Law"}, active.Values(types.TopicsFacet))

	active = Toggle(active, types.TopicsFacet, "Science", false)
	assert.Equal(t, []string{"Law"}, active.Values(types.TopicsFacet))

	active = Toggle(active, types.TopicsFacet, "Law", false)
	_, ok := active[types.TopicsFacet]
	assert.False(t, ok, "empty groups should be dropped")
}

func TestToggleIsIdempotent(t *testing.T) {
	sequences := []struct {
		name     string
		steps    []bool
		expected bool
	}{
		{"on twice", []bool{true, true}, true},
		{"off on an empty group", []bool{false, false}, false},
		{"on off off", []bool{true, false, false}, false},
		{"off on on", []bool{false, true, true}, true},
	}
	for _, tc := range sequences {
		t.Run(tc.name, func(t *testing.T) {
			active := types.ActiveFacets{}
			for _, enabled := range tc.steps {
				active = Toggle(active, types.OfferedByFacet, "OCW", enabled)
			}
			assert.Equal(t, tc.expected, slices.Contains(active[types.OfferedByFacet], "OCW"))
			if tc.expected {
				assert.Len(t, active.Values(types.OfferedByFacet), 1)
			}
		})
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	active := types.ActiveFacets{types.TopicsFacet: {"Science"}}
	_ = Toggle(active, types.TopicsFacet, "Law", true)
	_ = Toggle(active, types.TopicsFacet, "Science", false)
	assert.Equal(t, []string{"Science"}, active.Values(types.TopicsFacet))
}

func TestClear(t *testing.T) {
	assert.True(t, Clear().IsEmpty())
}

func TestSet(t *testing.T) {
	active := Set(types.ActiveFacets{}, types.CostFacet, "free", "free", "")
	assert.Equal(t, []string{"free"}, active.Values(types.CostFacet))
}
