package input

import (
	"fmt"
	"reflect"
	"testing"
)

type recordingSink struct {
	calls []string
}

func (r *recordingSink) OnKeyDown(key Key) {
	r.calls = append(r.calls, "key:"+key.String())
}

func (r *recordingSink) OnPointerMove(dx, dy float32) {
	r.calls = append(r.calls, fmt.Sprintf("move:%v,%v", dx, dy))
}

func (r *recordingSink) OnCloseRequested() {
	r.calls = append(r.calls, "close")
}

type resizingSink struct {
	recordingSink
}

func (r *resizingSink) OnResize(w, h int) {
	r.calls = append(r.calls, fmt.Sprintf("resize:%dx%d", w, h))
}

func TestDrainPreservesOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: EventKeyDown, Key: KeyW})
	q.Push(Event{Type: EventPointerMove, DX: 3, DY: -2})
	q.Push(Event{Type: EventKeyDown, Key: KeySpace})
	q.Push(Event{Type: EventQuit})

	sink := &recordingSink{}
	if n := q.Drain(sink); n != 4 {
		t.Errorf("Drain returned %d, want 4", n)
	}

	want := []string{"key:w", "move:3,-2", "key:space", "close"}
	if !reflect.DeepEqual(sink.calls, want) {
		t.Errorf("calls = %v, want %v", sink.calls, want)
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after Drain, got %d", q.Len())
	}
}

func TestDrainResize(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: EventWindowResize, Width: 640, Height: 480})

	plain := &recordingSink{}
	q.Drain(plain)
	if len(plain.calls) != 0 {
		t.Errorf("sink without OnResize should ignore resizes, got %v", plain.calls)
	}

	q.Push(Event{Type: EventWindowResize, Width: 640, Height: 480})
	sized := &resizingSink{}
	q.Drain(sized)
	want := []string{"resize:640x480"}
	if !reflect.DeepEqual(sized.calls, want) {
		t.Errorf("calls = %v, want %v", sized.calls, want)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEscape, "escape"},
		{KeyF12, "f12"},
		{Key(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}
