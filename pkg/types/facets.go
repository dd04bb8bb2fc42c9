package types

import "slices"

// Facet group names used by the learning resource search.
const (
	TypeFacet         = "type"
	TopicsFacet       = "topics"
	OfferedByFacet    = "offered_by"
	AvailabilityFacet = "availability"
	CostFacet         = "cost"
)

var KnownFacetGroups = []string{
	TypeFacet,
	OfferedByFacet,
	TopicsFacet,
	AvailabilityFacet,
	CostFacet,
}

func IsKnownFacetGroup(group string) bool {
	return slices.Contains(KnownFacetGroups, group)
}

type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"doc_count"`
}

type FacetGroup struct {
	Name    string   `json:"name"`
	Buckets []Bucket `json:"buckets"`
}

func (g FacetGroup) Keys() []string {
	keys := make([]string, len(g.Buckets))
	for i, b := range g.Buckets {
		keys[i] = b.Key
	}
	return keys
}

func (g FacetGroup) Has(key string) bool {
	return slices.ContainsFunc(g.Buckets, func(b Bucket) bool {
		return b.Key == key
	})
}

// ActiveFacets maps a facet group to its selected values. Values are
// duplicate free; the slice order only follows selection order so that
// serialised parameters stay stable.
type ActiveFacets map[string][]string

func (a ActiveFacets) Values(group string) []string {
	return a[group]
}

func (a ActiveFacets) Clone() ActiveFacets {
	result := make(ActiveFacets, len(a))
	for group, values := range a {
		result[group] = slices.Clone(values)
	}
	return result
}

// Known drops groups the search index does not facet on.
func (a ActiveFacets) Known() ActiveFacets {
	result := make(ActiveFacets, len(a))
	for group, values := range a {
		if IsKnownFacetGroup(group) {
			result[group] = values
		}
	}
	return result
}

// Canonical drops empty groups and duplicate values.
func (a ActiveFacets) Canonical() ActiveFacets {
	result := make(ActiveFacets, len(a))
	for group, values := range a {
		unique := make([]string, 0, len(values))
		for _, v := range values {
			if v == "" || slices.Contains(unique, v) {
				continue
			}
			unique = append(unique, v)
		}
		if len(unique) > 0 {
			result[group] = unique
		}
	}
	return result
}

// Equal compares selections as sets, ignoring empty groups.
func (a ActiveFacets) Equal(b ActiveFacets) bool {
	ca, cb := a.Canonical(), b.Canonical()
	if len(ca) != len(cb) {
		return false
	}
	for group, values := range ca {
		other, ok := cb[group]
		if !ok || len(other) != len(values) {
			return false
		}
		for _, v := range values {
			if !slices.Contains(other, v) {
				return false
			}
		}
	}
	return true
}

func (a ActiveFacets) IsEmpty() bool {
	return len(a.Canonical()) == 0
}
