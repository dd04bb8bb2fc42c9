package search

import (
	"slices"

	"github.com/matst80/learn-finder/pkg/types"
)

// Accumulate applies a fetched page to the results collected so far. A
// non-incremental page replaces everything. An incremental page is spliced
// in at offset, trusting the offset over the current length so a page that
// completes out of order cannot duplicate items. The result never holds more
// than page.Total items.
func Accumulate(prev []types.Resource, page *types.SearchResultPage, offset int, incremental bool) []types.Resource {
	if page == nil {
		return prev
	}
	var result []types.Resource
	if !incremental {
		result = slices.Clone(page.Items)
	} else {
		offset = max(0, min(offset, len(prev)))
		result = make([]types.Resource, 0, offset+len(page.Items))
		result = append(result, prev[:offset]...)
		result = append(result, page.Items...)
	}
	if page.Total >= 0 && len(result) > page.Total {
		result = result[:page.Total]
	}
	return result
}
