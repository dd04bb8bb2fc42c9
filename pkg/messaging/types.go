package messaging

import "github.com/matst80/learn-finder/pkg/types"

type ChangeTopic string

const (
	ResourceChanged ChangeTopic = "resource_changed"
	Tracking        ChangeTopic = "tracking"
)

// ResourceChange is published upstream when a document is edited or removed.
type ResourceChange struct {
	ObjectType types.ObjectType `json:"object_type"`
	Id         string           `json:"id"`
	Deleted    bool             `json:"deleted,omitempty"`
}
