package sse

import (
	"sync"
)

// Event names published on a job seeker's topic.
const (
	EventSessionChanged = "session_changed"
	EventLeaveSubmitted = "leave_submitted"
)

// Event is delivered to every open view of one job seeker.
type Event struct {
	JobseekerID string
	Event       string
	Data        interface{}
}

// Hub fans events out to the open views of each job seeker.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a view for jobseekerID. The returned cleanup closes the
// channel and must be called exactly once.
func (h *Hub) Subscribe(jobseekerID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[jobseekerID] == nil {
		h.subscribers[jobseekerID] = make(map[chan Event]struct{})
	}
	h.subscribers[jobseekerID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[jobseekerID], ch)
			close(ch)
			if len(h.subscribers[jobseekerID]) == 0 {
				delete(h.subscribers, jobseekerID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every view of jobseekerID without blocking.
// A view whose buffer is full misses the event.
func (h *Hub) Publish(jobseekerID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.JobseekerID = jobseekerID
	for ch := range h.subscribers[jobseekerID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open views for jobseekerID.
func (h *Hub) SubscriberCount(jobseekerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[jobseekerID])
}
