package search

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/learn-finder/pkg/types"
)

// searchParams is the address bar form of the search state.
type searchParams struct {
	Text         string   `schema:"q,omitempty"`
	Type         []string `schema:"type,omitempty"`
	OfferedBy    []string `schema:"o,omitempty"`
	Topics       []string `schema:"t,omitempty"`
	Availability []string `schema:"a,omitempty"`
	Cost         []string `schema:"c,omitempty"`
}

type pageParams struct {
	From    int    `schema:"from"`
	Size    int    `schema:"size,default:10"`
	Channel string `schema:"channel"`
	Sort    string `schema:"sort"`
	Dir     string `schema:"dir"`
}

var paramOrder = []string{"q", "type", "o", "t", "a", "c"}

var decoder = schema.NewDecoder()
var encoder = schema.NewEncoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func (p *searchParams) facets() types.ActiveFacets {
	return types.ActiveFacets{
		types.TypeFacet:         p.Type,
		types.OfferedByFacet:    p.OfferedBy,
		types.TopicsFacet:       p.Topics,
		types.AvailabilityFacet: p.Availability,
		types.CostFacet:         p.Cost,
	}.Canonical()
}

func paramsFrom(text string, active types.ActiveFacets) *searchParams {
	return &searchParams{
		Text:         strings.TrimSpace(text),
		Type:         active[types.TypeFacet],
		OfferedBy:    active[types.OfferedByFacet],
		Topics:       active[types.TopicsFacet],
		Availability: active[types.AvailabilityFacet],
		Cost:         active[types.CostFacet],
	}
}

// SerializeParams renders text and facets as a query string with a fixed key
// order so that links stay stable.
func SerializeParams(text string, active types.ActiveFacets) (string, error) {
	values := url.Values{}
	if err := encoder.Encode(paramsFrom(text, active.Canonical()), values); err != nil {
		return "", err
	}
	var buf strings.Builder
	for _, key := range paramOrder {
		for _, v := range values[key] {
			if v == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(key))
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(v))
		}
	}
	return buf.String(), nil
}

// DeserializeParams reads text and facets back from query values.
func DeserializeParams(query url.Values) (string, types.ActiveFacets, error) {
	p := &searchParams{}
	if err := decoder.Decode(p, query); err != nil {
		return "", types.ActiveFacets{}, types.NewValidationError("invalid search parameters: %v", err)
	}
	return strings.TrimSpace(p.Text), p.facets(), nil
}

func DeserializeQueryString(raw string) (string, types.ActiveFacets, error) {
	query, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return "", types.ActiveFacets{}, types.NewValidationError("invalid query string: %v", err)
	}
	return DeserializeParams(query)
}

// QueryFromValues builds a full search query, including paging and sort,
// from request parameters.
func QueryFromValues(query url.Values) (types.SearchQuery, error) {
	text, active, err := DeserializeParams(query)
	if err != nil {
		return types.SearchQuery{}, err
	}
	page := &pageParams{}
	if err = decoder.Decode(page, query); err != nil {
		return types.SearchQuery{}, types.NewValidationError("invalid paging parameters: %v", err)
	}
	q := types.NewSearchQuery(text, active)
	q.From = page.From
	q.Size = page.Size
	q.ChannelName = page.Channel
	if page.Sort != "" {
		q.Sort = &types.SortOrder{Field: page.Sort, Option: page.Dir}
	}
	return q, nil
}
