// Package input turns window-system events into backend-neutral events
// and delivers them to a Sink in arrival order.
package input

// Key identifies a keyboard key independent of the window backend.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyF
	KeyZ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeySpace:   "space",
	KeyEscape:  "escape",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyR:       "r",
	KeyF:       "f",
	KeyZ:       "z",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyF12:     "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	// Pointer deltas in pixels; DY is positive when the pointer moves up.
	DX float32
	DY float32
}

// Sink receives dispatched events.
type Sink interface {
	OnKeyDown(key Key)
	OnPointerMove(dx, dy float32)
	OnCloseRequested()
}

// ResizeSink is implemented by sinks that track the drawable size.
type ResizeSink interface {
	OnResize(width, height int)
}

// Queue buffers events between polls. It is owned by the render thread.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return len(q.events) }

// Drain delivers every pending event to sink in order and empties the queue.
// It returns the number of events delivered.
func (q *Queue) Drain(sink Sink) int {
	n := len(q.events)
	resizer, _ := sink.(ResizeSink)

	for _, e := range q.events {
		switch e.Type {
		case EventQuit:
			sink.OnCloseRequested()
		case EventKeyDown:
			sink.OnKeyDown(e.Key)
		case EventPointerMove:
			sink.OnPointerMove(e.DX, e.DY)
		case EventWindowResize:
			if resizer != nil {
				resizer.OnResize(e.Width, e.Height)
			}
		}
	}

	q.events = q.events[:0]
	return n
}
