package server

import (
	"slices"

	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/types"
)

// ResultItem is the flat card shown for a resource in a result list.
type ResultItem struct {
	ObjectType  types.ObjectType `json:"object_type"`
	ObjectId    string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Detail      string           `json:"detail,omitempty"`
	ImageSrc    string           `json:"image_src,omitempty"`
	Url         string           `json:"url,omitempty"`
	OfferedBy   []string         `json:"offered_by,omitempty"`
	Topics      []string         `json:"topics,omitempty"`
	Runs        int              `json:"runs,omitempty"`
	ItemCount   int              `json:"item_count,omitempty"`
}

type summaryVisitor struct {
	item ResultItem
}

func (v *summaryVisitor) VisitCourse(c *types.Course) {
	v.item = ResultItem{
		Title:       c.Title,
		Description: c.ShortDescription,
		Detail:      c.Platform,
		ImageSrc:    c.ImageSrc,
		Url:         c.Url,
		OfferedBy:   c.OfferedBy,
		Topics:      c.Topics,
		Runs:        len(c.Runs),
	}
}

func (v *summaryVisitor) VisitProgram(p *types.Program) {
	v.item = ResultItem{
		Title:       p.Title,
		Description: p.ShortDescription,
		ImageSrc:    p.ImageSrc,
		Url:         p.Url,
		OfferedBy:   p.OfferedBy,
		Topics:      p.Topics,
		Runs:        len(p.Runs),
		ItemCount:   p.ItemCount,
	}
}

func (v *summaryVisitor) VisitVideo(video *types.Video) {
	v.item = ResultItem{
		Title:       video.Title,
		Description: video.ShortDescription,
		Detail:      video.Duration,
		ImageSrc:    video.ImageSrc,
		Url:         video.Url,
		OfferedBy:   video.OfferedBy,
		Topics:      video.Topics,
	}
}

func (v *summaryVisitor) VisitUserList(l *types.UserList) {
	v.item = ResultItem{
		Title:       l.Title,
		Description: l.ShortDescription,
		Detail:      l.AuthorName,
		ImageSrc:    l.ImageSrc,
		Topics:      l.Topics,
		ItemCount:   l.ItemCount,
	}
}

func (v *summaryVisitor) VisitBootcamp(b *types.Bootcamp) {
	v.item = ResultItem{
		Title:       b.Title,
		Description: b.ShortDescription,
		Detail:      b.Location,
		ImageSrc:    b.ImageSrc,
		Url:         b.Url,
		OfferedBy:   b.OfferedBy,
		Topics:      b.Topics,
		Runs:        len(b.Runs),
	}
}

func (v *summaryVisitor) VisitPodcast(p *types.Podcast) {
	v.item = ResultItem{
		Title:       p.Title,
		Description: p.ShortDescription,
		ImageSrc:    p.ImageSrc,
		Url:         p.Url,
		OfferedBy:   p.OfferedBy,
		Topics:      p.Topics,
		ItemCount:   p.EpisodeCount,
	}
}

func (v *summaryVisitor) VisitPodcastEpisode(e *types.PodcastEpisode) {
	v.item = ResultItem{
		Title:       e.Title,
		Description: e.ShortDescription,
		Detail:      e.PodcastTitle,
		Url:         e.Url,
		OfferedBy:   e.OfferedBy,
		Topics:      e.Topics,
	}
}

func (v *summaryVisitor) VisitPost(p *types.Post) {
	v.item = ResultItem{
		Title:       p.Title,
		Description: p.Text,
		Detail:      p.AuthorName,
		Url:         p.Url,
		ItemCount:   p.NumComments,
	}
}

func (v *summaryVisitor) VisitComment(c *types.Comment) {
	v.item = ResultItem{
		Title:       c.PostTitle,
		Description: c.Text,
		Detail:      c.AuthorName,
	}
}

func (v *summaryVisitor) VisitProfile(p *types.Profile) {
	v.item = ResultItem{
		Title:       p.Name,
		Description: p.Bio,
		Detail:      p.Headline,
		ImageSrc:    p.ImageSmall,
	}
}

func Summarize(r types.Resource) ResultItem {
	v := &summaryVisitor{}
	r.Accept(v)
	v.item.ObjectType = r.ObjectType()
	v.item.ObjectId = r.ObjectID()
	return v.item
}

func summarizeAll(resources []types.Resource) []ResultItem {
	items := make([]ResultItem, len(resources))
	for i, r := range resources {
		items[i] = Summarize(r)
	}
	return items
}

// orderedFacets lists the known groups first, then anything else by name.
func orderedFacets(facets map[string]types.FacetGroup) []types.FacetGroup {
	result := make([]types.FacetGroup, 0, len(facets))
	for _, name := range types.KnownFacetGroups {
		if g, ok := facets[name]; ok {
			result = append(result, g)
		}
	}
	rest := make([]string, 0)
	for name := range facets {
		if !types.IsKnownFacetGroup(name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		result = append(result, facets[name])
	}
	return result
}

type SearchResponse struct {
	Items   []ResultItem       `json:"items"`
	Total   int                `json:"total"`
	From    int                `json:"from"`
	Size    int                `json:"size"`
	Facets  []types.FacetGroup `json:"facets"`
	Suggest []string           `json:"suggest,omitempty"`
}

type SessionResponse struct {
	search.Snapshot
	Items  []ResultItem       `json:"items"`
	Facets []types.FacetGroup `json:"facets"`
	Kind   string             `json:"errorKind,omitempty"`
	Drawer []drawer.Frame     `json:"drawer"`
}

func newSessionResponse(s search.Snapshot, frames []drawer.Frame) SessionResponse {
	res := SessionResponse{
		Snapshot: s,
		Items:    summarizeAll(s.Results),
		Facets:   orderedFacets(s.Facets),
		Drawer:   frames,
	}
	if s.Error != "" {
		res.Kind = s.ErrorKind.String()
	}
	return res
}

type DrawerResponse struct {
	Frame    *drawer.Frame  `json:"frame,omitempty"`
	Depth    int            `json:"depth"`
	Summary  *ResultItem    `json:"summary,omitempty"`
	Resource types.Resource `json:"resource,omitempty"`
}

type textRequest struct {
	Text  string `json:"text"`
	Flush bool   `json:"flush,omitempty"`
}

type facetRequest struct {
	Group   string `json:"group"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
	Flush   bool   `json:"flush,omitempty"`
}

type paramsRequest struct {
	Params string `json:"params"`
	Flush  bool   `json:"flush,omitempty"`
}

type loadMoreResponse struct {
	Issued bool `json:"issued"`
}

type addItemRequest struct {
	ContentType types.ObjectType `json:"content_type"`
	ObjectId    int              `json:"object_id"`
}

type moveItemRequest struct {
	Position int `json:"position"`
}
