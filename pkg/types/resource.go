package types

import (
	"fmt"
	"strconv"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
)

// Resource is the closed set of documents returned by search and detail
// endpoints. The unexported method keeps the set sealed to this package.
type Resource interface {
	ObjectType() ObjectType
	ObjectID() string
	Accept(v Visitor)
	isResource()
}

// Visitor has one method per resource kind. Adding a kind adds a method,
// which breaks every implementation until it handles the new kind.
type Visitor interface {
	VisitCourse(*Course)
	VisitProgram(*Program)
	VisitVideo(*Video)
	VisitUserList(*UserList)
	VisitBootcamp(*Bootcamp)
	VisitPodcast(*Podcast)
	VisitPodcastEpisode(*PodcastEpisode)
	VisitPost(*Post)
	VisitComment(*Comment)
	VisitProfile(*Profile)
}

type Price struct {
	Price float64 `json:"price"`
	Mode  string  `json:"mode,omitempty"`
}

type Run struct {
	Id           int      `json:"id"`
	RunId        string   `json:"run_id"`
	Title        string   `json:"title,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	BestStart    string   `json:"best_start_date,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Level        string   `json:"level,omitempty"`
	Prices       []Price  `json:"prices,omitempty"`
	Instructors  []string `json:"instructors,omitempty"`
}

type Course struct {
	Id               int      `json:"id"`
	CourseId         string   `json:"course_id,omitempty"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	Platform         string   `json:"platform,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	ImageSrc         string   `json:"image_src,omitempty"`
	Url              string   `json:"url,omitempty"`
	Runs             []Run    `json:"runs,omitempty"`
	IsFavorite       bool     `json:"is_favorite,omitempty"`
}

type Program struct {
	Id               int      `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	ImageSrc         string   `json:"image_src,omitempty"`
	Url              string   `json:"url,omitempty"`
	ItemCount        int      `json:"item_count,omitempty"`
	Runs             []Run    `json:"runs,omitempty"`
	IsFavorite       bool     `json:"is_favorite,omitempty"`
}

type Video struct {
	Id               int      `json:"id"`
	VideoId          string   `json:"video_id,omitempty"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	ImageSrc         string   `json:"image_src,omitempty"`
	Url              string   `json:"url,omitempty"`
	IsFavorite       bool     `json:"is_favorite,omitempty"`
}

// ListItem is a single entry in a user list, pointing at another resource.
type ListItem struct {
	Id          int        `json:"id"`
	Position    int        `json:"position"`
	ContentType ObjectType `json:"content_type"`
	ObjectId    int        `json:"object_id"`
}

// UserList covers both "userlist" and "learningpath" documents; ListType
// holds which one.
type UserList struct {
	Id               int        `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description,omitempty"`
	ListType         ObjectType `json:"list_type,omitempty"`
	Privacy          string     `json:"privacy_level,omitempty"`
	Author           int        `json:"author,omitempty"`
	AuthorName       string     `json:"author_name,omitempty"`
	Topics           []string   `json:"topics,omitempty"`
	ImageSrc         string     `json:"image_src,omitempty"`
	ItemCount        int        `json:"item_count"`
	Items            []ListItem `json:"items,omitempty"`
	IsFavorite       bool       `json:"is_favorite,omitempty"`
}

type Bootcamp struct {
	Id               int      `json:"id"`
	CourseId         string   `json:"course_id,omitempty"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	Location         string   `json:"location,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	ImageSrc         string   `json:"image_src,omitempty"`
	Url              string   `json:"url,omitempty"`
	Runs             []Run    `json:"runs,omitempty"`
}

type Podcast struct {
	Id               int      `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	FullDescription  string   `json:"full_description,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	ImageSrc         string   `json:"image_src,omitempty"`
	Url              string   `json:"url,omitempty"`
	EpisodeCount     int      `json:"episode_count,omitempty"`
}

type PodcastEpisode struct {
	Id               int      `json:"id"`
	PodcastId        int      `json:"podcast_id"`
	Title            string   `json:"title"`
	PodcastTitle     string   `json:"podcast_title,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	OfferedBy        []string `json:"offered_by,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Url              string   `json:"url,omitempty"`
	LastModified     string   `json:"last_modified,omitempty"`
}

type Post struct {
	Id          string `json:"post_id"`
	Title       string `json:"post_title"`
	Text        string `json:"text,omitempty"`
	Url         string `json:"post_link_url,omitempty"`
	ChannelName string `json:"channel_name"`
	AuthorId    string `json:"author_id,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Created     string `json:"created,omitempty"`
}

type Comment struct {
	Id          string `json:"comment_id"`
	PostId      string `json:"post_id"`
	PostTitle   string `json:"post_title,omitempty"`
	Text        string `json:"text"`
	ChannelName string `json:"channel_name"`
	AuthorId    string `json:"author_id,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	Score       int    `json:"score"`
	Created     string `json:"created,omitempty"`
}

type Profile struct {
	Username   string `json:"author_id"`
	Name       string `json:"author_name"`
	Headline   string `json:"author_headline,omitempty"`
	Bio        string `json:"author_bio,omitempty"`
	ImageSmall string `json:"author_avatar_small,omitempty"`
}

func (*Course) ObjectType() ObjectType         { return CourseType }
func (*Program) ObjectType() ObjectType        { return ProgramType }
func (*Video) ObjectType() ObjectType          { return VideoType }
func (*Bootcamp) ObjectType() ObjectType       { return BootcampType }
func (*Podcast) ObjectType() ObjectType        { return PodcastType }
func (*PodcastEpisode) ObjectType() ObjectType { return PodcastEpisodeType }
func (*Post) ObjectType() ObjectType           { return PostType }
func (*Comment) ObjectType() ObjectType        { return CommentType }
func (*Profile) ObjectType() ObjectType        { return ProfileType }

func (l *UserList) ObjectType() ObjectType {
	if l.ListType == LearningPathType {
		return LearningPathType
	}
	return UserListType
}

func (r *Course) ObjectID() string         { return strconv.Itoa(r.Id) }
func (r *Program) ObjectID() string        { return strconv.Itoa(r.Id) }
func (r *Video) ObjectID() string          { return strconv.Itoa(r.Id) }
func (r *UserList) ObjectID() string       { return strconv.Itoa(r.Id) }
func (r *Bootcamp) ObjectID() string       { return strconv.Itoa(r.Id) }
func (r *Podcast) ObjectID() string        { return strconv.Itoa(r.Id) }
func (r *PodcastEpisode) ObjectID() string { return strconv.Itoa(r.Id) }
func (r *Post) ObjectID() string           { return r.Id }
func (r *Comment) ObjectID() string        { return r.Id }
func (r *Profile) ObjectID() string        { return r.Username }

func (r *Course) Accept(v Visitor)         { v.VisitCourse(r) }
func (r *Program) Accept(v Visitor)        { v.VisitProgram(r) }
func (r *Video) Accept(v Visitor)          { v.VisitVideo(r) }
func (r *UserList) Accept(v Visitor)       { v.VisitUserList(r) }
func (r *Bootcamp) Accept(v Visitor)       { v.VisitBootcamp(r) }
func (r *Podcast) Accept(v Visitor)        { v.VisitPodcast(r) }
func (r *PodcastEpisode) Accept(v Visitor) { v.VisitPodcastEpisode(r) }
func (r *Post) Accept(v Visitor)           { v.VisitPost(r) }
func (r *Comment) Accept(v Visitor)        { v.VisitComment(r) }
func (r *Profile) Accept(v Visitor)        { v.VisitProfile(r) }

func (*Course) isResource()         {}
func (*Program) isResource()        {}
func (*Video) isResource()          {}
func (*UserList) isResource()       {}
func (*Bootcamp) isResource()       {}
func (*Podcast) isResource()        {}
func (*PodcastEpisode) isResource() {}
func (*Post) isResource()           {}
func (*Comment) isResource()        {}
func (*Profile) isResource()        {}

// NewResource returns an empty document for the given tag.
func NewResource(t ObjectType) (Resource, error) {
	switch t {
	case CourseType:
		return &Course{}, nil
	case ProgramType:
		return &Program{}, nil
	case VideoType:
		return &Video{}, nil
	case UserListType:
		return &UserList{ListType: UserListType}, nil
	case LearningPathType:
		return &UserList{ListType: LearningPathType}, nil
	case BootcampType:
		return &Bootcamp{}, nil
	case PodcastType:
		return &Podcast{}, nil
	case PodcastEpisodeType:
		return &PodcastEpisode{}, nil
	case PostType:
		return &Post{}, nil
	case CommentType:
		return &Comment{}, nil
	case ProfileType:
		return &Profile{}, nil
	}
	return nil, fmt.Errorf("unknown object type %q", t)
}

// DecodeResource decodes a raw document into the concrete kind named by t.
func DecodeResource(t ObjectType, raw []byte) (Resource, error) {
	res, err := NewResource(t)
	if err != nil {
		return nil, err
	}
	if err = jsoncompat.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t, err)
	}
	if l, ok := res.(*UserList); ok && l.ListType == "" {
		l.ListType = t
	}
	return res, nil
}

type typeProbe struct {
	ObjectType ObjectType `json:"object_type"`
}

// DecodeTagged reads object_type from the document itself before decoding.
func DecodeTagged(raw []byte) (Resource, error) {
	probe := typeProbe{}
	if err := jsoncompat.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	return DecodeResource(probe.ObjectType, raw)
}
