package tracking

import (
	"net/http"

	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSearch(sessionId string, search SearchEvent)
	TrackDrawer(sessionId string, frame drawer.Frame)
	Close() error
}

type EventType uint16

const (
	SessionEvent EventType = iota
	SearchEventType
	DrawerEvent
)

type BaseEvent struct {
	SessionId string    `json:"session_id"`
	Country   string    `json:"country,omitempty"`
	Event     EventType `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
	Referer   string `json:"referer,omitempty"`
}

type SearchEvent struct {
	*BaseEvent
	Text            string             `json:"query"`
	Facets          types.ActiveFacets `json:"facets,omitempty"`
	NumberOfResults int                `json:"noi"`
	Offset          int                `json:"offset"`
	Incremental     bool               `json:"incremental,omitempty"`
}

type DrawerOpened struct {
	*BaseEvent
	ObjectType types.ObjectType `json:"object_type"`
	ObjectId   string           `json:"object_id"`
	RunId      int              `json:"run_id,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}
