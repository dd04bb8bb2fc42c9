package types

// SearchResultPage is one page of hits with the facet aggregations and
// suggestions returned alongside it.
type SearchResultPage struct {
	Items       []Resource            `json:"items"`
	Total       int                   `json:"total"`
	Facets      map[string]FacetGroup `json:"facets"`
	Suggestions []string              `json:"suggest,omitempty"`
}

