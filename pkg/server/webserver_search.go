package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/matst80/learn-finder/pkg/common"
	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/facet"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/types"
)

func defaultHeaders(w http.ResponseWriter, r *http.Request, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func searchKey(req types.SearchRequest) (string, error) {
	data, err := jsoncompat.Marshal(req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("search:%016x", xxhash.Sum64(data)), nil
}

func scopeFor(q types.SearchQuery) search.Scope {
	if q.ChannelName != "" {
		return search.Discussions
	}
	return search.LearningResources
}

func (ws *WebServer) runSearch(ctx context.Context, q types.SearchQuery) (SearchResponse, error) {
	req, err := search.BuildQuery(q, scopeFor(q))
	if err != nil {
		return SearchResponse{}, err
	}
	key, err := searchKey(req)
	if err != nil {
		return SearchResponse{}, err
	}
	helper := NewCacheHelper[SearchResponse](ws.Cache, searchCache, ws.Logger)
	return helper.Handle(ctx, key, func() (SearchResponse, error) {
		page, err := ws.Searcher.Search(ctx, req)
		if err != nil {
			return SearchResponse{}, err
		}
		return SearchResponse{
			Items:   summarizeAll(page.Items),
			Total:   page.Total,
			From:    req.From,
			Size:    req.Size,
			Facets:  orderedFacets(facet.MergeAll(page, q.ActiveFacets)),
			Suggest: page.Suggestions,
		}, nil
	}, ws.SearchTTL)
}

// Search answers a single search from query parameters without touching
// session state.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request) {
	q, err := search.QueryFromValues(r.URL.Query())
	if err != nil {
		common.WriteError(ws.Logger, w, r, err)
		return
	}
	res, err := ws.runSearch(r.Context(), q)
	if err != nil {
		common.WriteError(ws.Logger, w, r, err)
		return
	}
	defaultHeaders(w, r, "120")
	w.WriteHeader(http.StatusOK)
	_ = jsoncompat.NewEncoder(w).Encode(res)
}
