package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTransformDetached = "transform.detached"

// DetachReason says why the transform system cut a parent link.
type DetachReason uint8

const (
	DetachMissingParent DetachReason = iota + 1
	DetachCycle
	DetachDepthExceeded
)

func (r DetachReason) String() string {
	switch r {
	case DetachMissingParent:
		return "missing_parent"
	case DetachCycle:
		return "cycle"
	case DetachDepthExceeded:
		return "depth_exceeded"
	default:
		return "unknown"
	}
}

// DetachEvent is the payload of EventTransformDetached.
type DetachEvent struct {
	Entity Entity
	Parent Entity
	Reason DetachReason
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
