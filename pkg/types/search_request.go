package types

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxTextLength   = 1000
	// MaxOffset is the deepest offset the search index pages to.
	MaxOffset       = 10000
)

type SortOrder struct {
	Field  string `json:"field" schema:"sort"`
	Option string `json:"option" schema:"dir"`
}

func (s *SortOrder) Equal(o *SortOrder) bool {
	if s == nil || o == nil {
		return s == o
	}
	return *s == *o
}

// SearchQuery is the user visible search state. It is built fresh for every
// search and never mutated after that.
type SearchQuery struct {
	Text         string       `json:"text"`
	ActiveFacets ActiveFacets `json:"activeFacets"`
	From         int          `json:"from"`
	Size         int          `json:"size"`
	Sort         *SortOrder   `json:"sort,omitempty"`
	ChannelName  string       `json:"channelName,omitempty"`
}

func NewSearchQuery(text string, facets ActiveFacets) SearchQuery {
	return SearchQuery{
		Text:         text,
		ActiveFacets: facets.Canonical(),
		Size:         DefaultPageSize,
	}
}

// SameSearch reports whether two queries select the same result set,
// ignoring pagination.
func (q SearchQuery) SameSearch(o SearchQuery) bool {
	return strings.TrimSpace(q.Text) == strings.TrimSpace(o.Text) &&
		q.ChannelName == o.ChannelName &&
		q.Sort.Equal(o.Sort) &&
		q.ActiveFacets.Equal(o.ActiveFacets)
}

func (q SearchQuery) WithOffset(from int) SearchQuery {
	q.ActiveFacets = q.ActiveFacets.Clone()
	q.From = from
	return q
}

func (q SearchQuery) Validate() error {
	if q.From < 0 {
		return NewValidationError("offset must not be negative, got %d", q.From)
	}
	if q.From > MaxOffset {
		return NewValidationError("offset must not exceed %d, got %d", MaxOffset, q.From)
	}
	if q.Size <= 0 || q.Size > MaxPageSize {
		return NewValidationError("page size must be between 1 and %d, got %d", MaxPageSize, q.Size)
	}
	if utf8.RuneCountInString(q.Text) > MaxTextLength {
		return NewValidationError("search text is longer than %d characters", MaxTextLength)
	}
	for group := range q.ActiveFacets {
		if !IsKnownFacetGroup(group) {
			return NewValidationError("unknown facet group %q", group)
		}
	}
	for _, t := range q.ActiveFacets[TypeFacet] {
		if !ObjectType(t).IsKnown() {
			return NewValidationError("unknown object type %q", t)
		}
	}
	return nil
}

// SearchRequest is the payload posted to the search transport.
type SearchRequest struct {
	ChannelName string              `json:"channelName,omitempty"`
	Text        string              `json:"text,omitempty"`
	Type        []string            `json:"type"`
	Facets      map[string][]string `json:"facets,omitempty"`
	From        int                 `json:"from"`
	Size        int                 `json:"size"`
	Sort        *SortOrder          `json:"sort,omitempty"`
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Sanitize clamps pagination and strips empty facet groups.
func (s *SearchRequest) Sanitize() {
	s.From = clamp(s.From, 0, MaxOffset)
	s.Size = clamp(s.Size, 1, MaxPageSize)
	s.Text = strings.TrimSpace(s.Text)
	for group, values := range s.Facets {
		if len(values) == 0 {
			delete(s.Facets, group)
		}
	}
	if s.Sort != nil && s.Sort.Field == "" {
		s.Sort = nil
	}
}
