package search

import (
	"slices"
	"strings"

	"github.com/matst80/learn-finder/pkg/types"
)

// Scope selects which set of object types an empty type facet stands for.
type Scope int

const (
	LearningResources Scope = iota
	Discussions
)

func (s Scope) AllTypes() []types.ObjectType {
	if s == Discussions {
		return types.DiscussionTypes
	}
	return types.LearningResourceTypes
}

// BuildQuery maps the search state to the transport payload. An empty type
// facet is sent as every type in scope, never as an empty list.
func BuildQuery(q types.SearchQuery, scope Scope) (types.SearchRequest, error) {
	if err := q.Validate(); err != nil {
		return types.SearchRequest{}, err
	}
	active := q.ActiveFacets.Canonical()

	selected := make([]types.ObjectType, 0, len(active[types.TypeFacet]))
	for _, t := range active[types.TypeFacet] {
		selected = append(selected, types.ObjectType(t))
	}
	if len(selected) == 0 {
		selected = scope.AllTypes()
	}

	facets := make(map[string][]string, len(active))
	for group, values := range active {
		if group == types.TypeFacet {
			continue
		}
		facets[group] = slices.Clone(values)
	}

	req := types.SearchRequest{
		ChannelName: q.ChannelName,
		Text:        strings.TrimSpace(q.Text),
		Type:        types.TypeStrings(types.ExpandTypes(selected)),
		Facets:      facets,
		From:        q.From,
		Size:        q.Size,
	}
	if q.Sort != nil {
		sort := *q.Sort
		req.Sort = &sort
	}
	req.Sanitize()
	return req, nil
}
