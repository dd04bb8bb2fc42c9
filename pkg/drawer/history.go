package drawer

import (
	"slices"
	"sync"

	"github.com/matst80/learn-finder/pkg/types"
)

// Frame identifies the resource shown in the drawer. RunId is only set when
// a specific run of a course or program was opened.
type Frame struct {
	ObjectId   string           `json:"objectId"`
	ObjectType types.ObjectType `json:"objectType"`
	RunId      int              `json:"runId,omitempty"`
}

func FrameFor(r types.Resource) Frame {
	return Frame{ObjectId: r.ObjectID(), ObjectType: r.ObjectType()}
}

// History is the navigation stack of the detail drawer. The top frame is
// what is displayed; an empty stack means the drawer is closed.
type History struct {
	mu     sync.RWMutex
	frames []Frame
}

func NewHistory() *History {
	return &History{frames: make([]Frame, 0)}
}

func (h *History) Push(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, frame)
}

// Pop removes the displayed frame, doing nothing when the drawer is closed.
func (h *History) Pop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return
	}
	h.frames = h.frames[:len(h.frames)-1]
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = h.frames[:0]
}

func (h *History) Current() (Frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.frames) == 0 {
		return Frame{}, false
	}
	return h.frames[len(h.frames)-1], true
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.frames)
}

func (h *History) Frames() []Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.frames)
}
