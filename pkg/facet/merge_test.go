package facet

import (
	"testing"

	"github.com/matst80/learn-finder/pkg/types"
)

func TestMergeOptionsKeepsServerOrderFirst(t *testing.T) {
	server := []types.Bucket{
		{Key: "Science", Count: 10},
		{Key: "Engineering", Count: 4},
	}
	group := MergeOptions(types.TopicsFacet, server, []string{"Law", "Science", "Art"})

	expected := []types.Bucket{
		{Key: "Science", Count: 10},
		{Key: "Engineering", Count: 4},
		{Key: "Law", Count: 0},
		{Key: "Art", Count: 0},
	}
	if len(group.Buckets) != len(expected) {
		t.Fatalf("Expected %d buckets, got %v", len(expected), group.Buckets)
	}
	for i, b := range expected {
		if group.Buckets[i] != b {
			t.Errorf("Expected bucket %d to be %v, got %v", i, b, group.Buckets[i])
		}
	}
}

func TestMergeOptionsIsSupersetOfActive(t *testing.T) {
	cases := [][]string{
		nil,
		{"a"},
		{"a", "b", "c"},
		{"x", "a"},
	}
	server := []types.Bucket{{Key: "a", Count: 1}, {Key: "b", Count: 2}}
	for _, active := range cases {
		group := MergeOptions("g", server, active)
		for _, v := range active {
			if !group.Has(v) {
				t.Errorf("Expected %q to be present in %v", v, group.Keys())
			}
		}
	}
}

func TestMergeOptionsDoesNotMutateServerBuckets(t *testing.T) {
	server := make([]types.Bucket, 1, 4)
	server[0] = types.Bucket{Key: "a", Count: 1}
	MergeOptions("g", server, []string{"b"})
	if len(server) != 1 || server[:2][1].Key != "" {
		t.Errorf("Expected server buckets to be untouched, got %v", server[:2])
	}
}

func TestMergeAllAddsGroupsOnlySelected(t *testing.T) {
	page := &types.SearchResultPage{
		Facets: map[string]types.FacetGroup{
			types.TopicsFacet: {Name: types.TopicsFacet, Buckets: []types.Bucket{{Key: "Science", Count: 3}}},
		},
	}
	active := types.ActiveFacets{
		types.TopicsFacet:    {"Law"},
		types.OfferedByFacet: {"OCW"},
	}
	merged := MergeAll(page, active)
	if !merged[types.TopicsFacet].Has("Law") || !merged[types.TopicsFacet].Has("Science") {
		t.Errorf("Expected topics to contain Science and Law, got %v", merged[types.TopicsFacet].Keys())
	}
	if !merged[types.OfferedByFacet].Has("OCW") {
		t.Errorf("Expected offered_by to contain OCW, got %v", merged[types.OfferedByFacet].Keys())
	}
}
