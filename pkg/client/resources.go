package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/matst80/learn-finder/pkg/types"
)

var resourcePaths = map[types.ObjectType]string{
	types.CourseType:         "courses",
	types.ProgramType:        "programs",
	types.VideoType:          "videos",
	types.UserListType:       "userlists",
	types.LearningPathType:   "userlists",
	types.BootcampType:       "bootcamps",
	types.PodcastType:        "podcasts",
	types.PodcastEpisodeType: "podcastepisodes",
}

func resourcePath(t types.ObjectType, id string) (string, error) {
	p, ok := resourcePaths[t]
	if !ok {
		return "", types.NewValidationError("no detail endpoint for %q", t)
	}
	if id == "" {
		return "", types.NewValidationError("missing %s id", t)
	}
	return fmt.Sprintf("/api/v0/%s/%s/", p, url.PathEscape(id)), nil
}

// GetResource fetches a single document from its per type endpoint.
func (c *Client) GetResource(ctx context.Context, t types.ObjectType, id string) (types.Resource, error) {
	path, err := resourcePath(t, id)
	if err != nil {
		return nil, err
	}
	raw := json.RawMessage{}
	if err = c.do(ctx, "GET", path, nil, &raw); err != nil {
		return nil, err
	}
	res, err := types.DecodeResource(t, raw)
	if err != nil {
		return nil, types.NewTransportError("invalid resource document", err)
	}
	return res, nil
}

// HasDetailEndpoint reports whether documents of type t can be fetched one
// by one. Discussion documents only exist in search results.
func HasDetailEndpoint(t types.ObjectType) bool {
	_, ok := resourcePaths[t]
	return ok
}
