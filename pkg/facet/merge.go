package facet

import (
	"slices"

	"github.com/matst80/learn-finder/pkg/types"
)

// MergeOptions appends a zero count bucket for every active value the server
// did not return, so a selection that no longer matches anything can still
// be rendered and unchecked. Server order comes first.
func MergeOptions(group string, serverBuckets []types.Bucket, activeValues []string) types.FacetGroup {
	buckets := make([]types.Bucket, 0, len(serverBuckets)+len(activeValues))
	buckets = append(buckets, serverBuckets...)
	for _, value := range activeValues {
		found := slices.ContainsFunc(buckets, func(b types.Bucket) bool {
			return b.Key == value
		})
		if !found {
			buckets = append(buckets, types.Bucket{Key: value, Count: 0})
		}
	}
	return types.FacetGroup{Name: group, Buckets: buckets}
}

// MergeAll merges every group present in either the page or the selection.
func MergeAll(page *types.SearchResultPage, active types.ActiveFacets) map[string]types.FacetGroup {
	result := make(map[string]types.FacetGroup)
	if page != nil {
		for name, group := range page.Facets {
			result[name] = MergeOptions(name, group.Buckets, active[name])
		}
	}
	for name, values := range active {
		if _, ok := result[name]; ok {
			continue
		}
		result[name] = MergeOptions(name, nil, values)
	}
	return result
}
