package types

import "slices"

// ObjectType is the object_type tag carried by every indexed document.
type ObjectType string

const (
	CourseType         ObjectType = "course"
	ProgramType        ObjectType = "program"
	UserListType       ObjectType = "userlist"
	LearningPathType   ObjectType = "learningpath"
	VideoType          ObjectType = "video"
	PodcastType        ObjectType = "podcast"
	PodcastEpisodeType ObjectType = "podcastepisode"
	BootcampType       ObjectType = "bootcamp"
	PostType           ObjectType = "post"
	CommentType        ObjectType = "comment"
	ProfileType        ObjectType = "profile"
)

// LearningResourceTypes is sent when the type facet of a learning resource
// search is empty.
var LearningResourceTypes = []ObjectType{
	CourseType,
	ProgramType,
	UserListType,
	LearningPathType,
	VideoType,
	PodcastType,
	PodcastEpisodeType,
}

// DiscussionTypes is sent when the type facet of a channel search is empty.
var DiscussionTypes = []ObjectType{
	PostType,
	CommentType,
	ProfileType,
}

// logical type -> physical types sent upstream
var typeAliases = map[ObjectType][]ObjectType{
	UserListType: {UserListType, LearningPathType},
	PodcastType:  {PodcastType, PodcastEpisodeType},
}

var knownTypes = map[ObjectType]struct{}{
	CourseType:         {},
	ProgramType:        {},
	UserListType:       {},
	LearningPathType:   {},
	VideoType:          {},
	PodcastType:        {},
	PodcastEpisodeType: {},
	BootcampType:       {},
	PostType:           {},
	CommentType:        {},
	ProfileType:        {},
}

func (t ObjectType) IsKnown() bool {
	_, ok := knownTypes[t]
	return ok
}

// Expand returns the physical types a logical type selection stands for.
func (t ObjectType) Expand() []ObjectType {
	if aliases, ok := typeAliases[t]; ok {
		return slices.Clone(aliases)
	}
	return []ObjectType{t}
}

// ExpandTypes expands every alias and removes duplicates, keeping the first
// occurrence order.
func ExpandTypes(selected []ObjectType) []ObjectType {
	result := make([]ObjectType, 0, len(selected)+2)
	seen := make(map[ObjectType]struct{}, len(selected)+2)
	for _, sel := range selected {
		for _, t := range sel.Expand() {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			result = append(result, t)
		}
	}
	return result
}

func TypeStrings(types []ObjectType) []string {
	result := make([]string, len(types))
	for i, t := range types {
		result[i] = string(t)
	}
	return result
}
