// Package input turns SDL2 events into preview events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a preview event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	WheelY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to preview events.
// Returns true if the preview should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Push(event) {
			return true
		}
	}
	return false
}

// Push translates one SDL event and records it. Returns true for quit
// requests.
func (i *Input) Push(event sdl.Event) bool {
	e, ok := Translate(event)
	if !ok {
		return false
	}
	i.events = append(i.events, e)
	return e.Type == EventQuit
}

// Translate converts an SDL event. ok is false for events the preview
// ignores.
func Translate(event sdl.Event) (ev Event, ok bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		} else if e.Type == sdl.KEYUP {
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventMouseDown
			return ev, true
		} else if e.Type == sdl.MOUSEBUTTONUP {
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, WheelY: int(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
