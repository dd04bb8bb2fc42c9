package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"hits": {
		"total": {"value": 42, "relation": "eq"},
		"hits": [
			{"_id": "course_1", "_source": {"object_type": "course", "id": 1, "title": "Intro"}},
			{"_id": "video_7", "_source": {"object_type": "video", "id": 7, "title": "Lecture"}},
			{"_id": "x_1", "_source": {"object_type": "unknown", "id": 1}}
		]
	},
	"aggregations": {
		"topics": {"buckets": [{"key": "Science", "doc_count": 10}]},
		"offered_by": {"doc_count": 40, "offered_by": {"buckets": [{"key": "OCW", "doc_count": 20}]}}
	},
	"suggest": ["intro"]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client(), nil)
}

func TestSearchDecodesHitsAndAggregations(t *testing.T) {
	var got types.SearchRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, searchPath, r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, jsoncompat.Unmarshal(data, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})

	page, err := c.Search(context.Background(), types.SearchRequest{Text: "intro", Size: 10})
	require.NoError(t, err)

	assert.Equal(t, "intro", got.Text)
	assert.Equal(t, 42, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, types.CourseType, page.Items[0].ObjectType())
	assert.Equal(t, "7", page.Items[1].ObjectID())
	assert.Equal(t, []string{"Science"}, page.Facets["topics"].Keys())
	assert.Equal(t, []string{"OCW"}, page.Facets["offered_by"].Keys())
	assert.Equal(t, []string{"intro"}, page.Suggestions)
}

func TestHitTotalForms(t *testing.T) {
	cases := map[string]int{
		`12`:                  12,
		`{"value": 5}`:        5,
		`null`:                0,
		`{"value": 0, "x":1}`: 0,
	}
	for raw, want := range cases {
		var total hitTotal
		if err := total.UnmarshalJSON([]byte(raw)); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if int(total) != want {
			t.Errorf("%s: expected %d, got %d", raw, want, total)
		}
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   types.ErrorKind
	}{
		{http.StatusBadRequest, types.KindValidation},
		{http.StatusUnauthorized, types.KindNotAuthorized},
		{http.StatusForbidden, types.KindNotAuthorized},
		{http.StatusNotFound, types.KindNotFound},
		{http.StatusInternalServerError, types.KindTransport},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
		})
		_, err := c.Search(context.Background(), types.SearchRequest{})
		require.Error(t, err)
		assert.Equal(t, tc.kind, types.KindOf(err), "status %d", tc.status)
	}
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestConnectionFailureIsTransport(t *testing.T) {
	c := NewClient("http://upstream", failingClient{}, nil)
	_, err := c.GetList(context.Background(), 1)
	assert.True(t, errors.Is(err, types.ErrTransport))
}

func TestBearerTokenForwarded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 3, "title": "Mine", "item_count": 0}`))
	})
	list, err := c.GetList(WithToken(context.Background(), "abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, "Mine", list.Title)
}

func TestGetResource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/podcastepisodes/9/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 9, "podcast_id": 2, "title": "Episode"}`))
	})
	res, err := c.GetResource(context.Background(), types.PodcastEpisodeType, "9")
	require.NoError(t, err)
	ep, ok := res.(*types.PodcastEpisode)
	require.True(t, ok)
	assert.Equal(t, 2, ep.PodcastId)
}

func TestGetResourceWithoutEndpoint(t *testing.T) {
	c := NewClient("http://upstream", failingClient{}, nil)
	_, err := c.GetResource(context.Background(), types.PostType, "abc")
	assert.Equal(t, types.KindValidation, types.KindOf(err))
}

func TestRemoveItemReadsListBack(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == "DELETE" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"id": 4, "title": "L", "item_count": 1, "items": [{"id": 2, "position": 1, "content_type": "course", "object_id": 8}]}`))
	})
	list, err := c.RemoveItem(context.Background(), 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE /api/v0/userlists/4/items/1/", "GET /api/v0/userlists/4/"}, calls)
	assert.Len(t, list.Items, 1)
}

func TestAddAndMoveItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		switch r.Method {
		case "POST":
			assert.Equal(t, "/api/v0/userlists/4/items/", r.URL.Path)
			assert.JSONEq(t, `{"content_type":"video","object_id":5}`, string(data))
		case "PATCH":
			assert.Equal(t, "/api/v0/userlists/4/items/2/", r.URL.Path)
			assert.JSONEq(t, `{"position":1}`, string(data))
		}
		_, _ = w.Write([]byte(`{"id": 4, "title": "L", "item_count": 0}`))
	})
	_, err := c.AddItem(context.Background(), 4, types.ListItem{ContentType: types.VideoType, ObjectId: 5})
	require.NoError(t, err)
	_, err = c.MoveItem(context.Background(), 4, 2, 1)
	require.NoError(t, err)
}
