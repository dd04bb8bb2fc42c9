package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

const searchPath = "/api/v0/search/"

type hit struct {
	Id     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// hitTotal accepts both the bare number and the {"value": n} form.
type hitTotal int

func (t *hitTotal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		wrapped := struct {
			Value int `json:"value"`
		}{}
		if err := jsoncompat.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*t = hitTotal(wrapped.Value)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*t = hitTotal(n)
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits  []hit    `json:"hits"`
		Total hitTotal `json:"total"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
	Suggest      []string                   `json:"suggest"`
}

type aggregation struct {
	Buckets []types.Bucket `json:"buckets"`
}

// decodeAggregation reads buckets either directly or one level down, where
// filtered aggregations wrap them.
func decodeAggregation(raw json.RawMessage) ([]types.Bucket, bool) {
	agg := aggregation{}
	if err := jsoncompat.Unmarshal(raw, &agg); err == nil && agg.Buckets != nil {
		return agg.Buckets, true
	}
	nested := map[string]json.RawMessage{}
	if err := jsoncompat.Unmarshal(raw, &nested); err != nil {
		return nil, false
	}
	for _, inner := range nested {
		agg = aggregation{}
		if err := jsoncompat.Unmarshal(inner, &agg); err == nil && agg.Buckets != nil {
			return agg.Buckets, true
		}
	}
	return nil, false
}

func (c *Client) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResultPage, error) {
	res := searchResponse{}
	if err := c.do(ctx, "POST", searchPath, req, &res); err != nil {
		return nil, err
	}
	return c.toPage(&res), nil
}

func (c *Client) toPage(res *searchResponse) *types.SearchResultPage {
	page := &types.SearchResultPage{
		Items:       make([]types.Resource, 0, len(res.Hits.Hits)),
		Total:       int(res.Hits.Total),
		Facets:      make(map[string]types.FacetGroup, len(res.Aggregations)),
		Suggestions: res.Suggest,
	}
	for _, h := range res.Hits.Hits {
		item, err := types.DecodeTagged(h.Source)
		if err != nil {
			c.logger.Warn("skipping search hit", zap.String("id", h.Id), zap.Error(err))
			continue
		}
		page.Items = append(page.Items, item)
	}
	for name, raw := range res.Aggregations {
		buckets, ok := decodeAggregation(raw)
		if !ok {
			continue
		}
		page.Facets[name] = types.FacetGroup{Name: name, Buckets: buckets}
	}
	return page
}
