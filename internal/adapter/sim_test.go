package adapter

import (
	"strings"
	"testing"
)

// draw runs one minimal legal frame on the sim: node 1 with output pin
// 10, node 2 with input pin 20.
func draw(s *Sim) {
	s.BeginEditor()

	s.BeginNode(1)
	s.BeginOutputAttribute(10, 0)
	s.EndOutputAttribute()
	s.EndNode()

	s.BeginNode(2)
	s.BeginInputAttribute(20, 0)
	s.EndInputAttribute()
	s.EndNode()

	s.EndEditor()
}

func mustPanic(t *testing.T, contains string, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", contains)
		}

		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, contains) {
			t.Fatalf("expected panic containing %q, got %v", contains, r)
		}
	}()

	fn()
}

func TestSimBracketEnforcement(t *testing.T) {
	t.Run("begin editor requires a current context", func(t *testing.T) {
		sim := NewSim()
		mustPanic(t, "no current editor context", sim.BeginEditor)
	})

	t.Run("begin node outside the editor region", func(t *testing.T) {
		sim := NewSim()
		sim.Context().MakeCurrent()
		mustPanic(t, "outside editor region", func() { sim.BeginNode(1) })
	})

	t.Run("end node without a matching begin", func(t *testing.T) {
		sim := NewSim()
		sim.Context().MakeCurrent()
		sim.BeginEditor()
		mustPanic(t, "end node", sim.EndNode)
	})

	t.Run("pin regions only open inside a node", func(t *testing.T) {
		sim := NewSim()
		sim.Context().MakeCurrent()
		sim.BeginEditor()
		mustPanic(t, "outside node region", func() { sim.BeginInputAttribute(20, 0) })
	})

	t.Run("nested editor regions are rejected", func(t *testing.T) {
		sim := NewSim()
		sim.Context().MakeCurrent()
		sim.BeginEditor()
		mustPanic(t, "begin editor while inside", sim.BeginEditor)
	})

	t.Run("link declaration inside a node region is rejected", func(t *testing.T) {
		sim := NewSim()
		sim.Context().MakeCurrent()
		sim.BeginEditor()
		sim.BeginNode(1)
		mustPanic(t, "link outside editor region", func() { sim.Link(100, 20, 10) })
	})
}

func TestSimFrameLifecycle(t *testing.T) {
	sim := NewSim()
	sim.Context().MakeCurrent()

	draw(sim)

	if sim.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", sim.Frames())
	}

	sim.CompleteDrag(10, 20, true)
	draw(sim)

	ev, ok := sim.LinkCreated()
	if !ok {
		t.Fatal("expected a created link event")
	}

	want := LinkEvent{StartNode: 1, StartPin: 10, EndNode: 2, EndPin: 20, FromSnap: true}
	if ev != want {
		t.Errorf("expected %+v, got %+v", want, ev)
	}

	// The event does not survive the next completed frame.
	draw(sim)

	if _, ok := sim.LinkCreated(); ok {
		t.Error("created-link event leaked into the next frame")
	}
}

func TestSimConnectNeedsDeclaredPins(t *testing.T) {
	sim := NewSim()
	sim.Context().MakeCurrent()

	draw(sim)

	// Pin 99 is never declared, so the drag cannot resolve.
	sim.CompleteDrag(99, 20, false)
	draw(sim)

	if _, ok := sim.LinkCreated(); ok {
		t.Error("expected no created link for an undeclared origin pin")
	}
}

func TestSimDeclaredLinks(t *testing.T) {
	sim := NewSim()
	sim.Context().MakeCurrent()

	sim.BeginEditor()
	sim.BeginNode(1)
	sim.BeginOutputAttribute(10, 0)
	sim.EndOutputAttribute()
	sim.EndNode()
	sim.BeginNode(2)
	sim.BeginInputAttribute(20, 0)
	sim.EndInputAttribute()
	sim.EndNode()
	sim.Link(100, 20, 10)
	sim.EndEditor()

	links := sim.DeclaredLinks()
	if len(links) != 1 {
		t.Fatalf("expected 1 declared link, got %d", len(links))
	}

	if links[0] != (DeclaredLink{ID: 100, Input: 20, Output: 10}) {
		t.Errorf("unexpected declared link %+v", links[0])
	}

	if owner, ok := sim.PinOwner(10); !ok || owner != 1 {
		t.Errorf("expected pin 10 owned by node 1, got %d (ok=%v)", owner, ok)
	}

	if !sim.IsInputPin(20) {
		t.Error("pin 20 should be an input")
	}

	if sim.IsInputPin(10) {
		t.Error("pin 10 should not be an input")
	}
}

func TestSimDropFiltering(t *testing.T) {
	sim := NewSim()
	sim.Context().MakeCurrent()
	draw(sim)

	sim.StartDrag(10)

	if pin, ok := sim.LinkStarted(); !ok || pin != 10 {
		t.Fatalf("expected drag from pin 10, got %d (ok=%v)", pin, ok)
	}

	sim.DropDrag(false)
	draw(sim)

	if pin, ok := sim.LinkDropped(false); !ok || pin != 10 {
		t.Errorf("plain drop should always count, got %d (ok=%v)", pin, ok)
	}

	sim.StartDrag(20)
	sim.DropDrag(true)
	draw(sim)

	if _, ok := sim.LinkDropped(false); ok {
		t.Error("detached drop must not count without includeDetached")
	}

	if pin, ok := sim.LinkDropped(true); !ok || pin != 20 {
		t.Errorf("detached drop should count with includeDetached, got %d (ok=%v)", pin, ok)
	}
}

func TestSimHoverState(t *testing.T) {
	sim := NewSim()

	sim.HoverNode(1)

	if id, ok := sim.HoveredNode(); !ok || id != 1 {
		t.Errorf("expected hovered node 1, got %d (ok=%v)", id, ok)
	}

	// Hover targets are mutually exclusive.
	sim.HoverPin(10)

	if _, ok := sim.HoveredNode(); ok {
		t.Error("node hover should be cleared by pin hover")
	}

	sim.HoverBackground()

	if !sim.IsEditorHovered() {
		t.Error("editor background should be hovered")
	}

	sim.ClearHover()

	if sim.IsEditorHovered() {
		t.Error("hover should be cleared entirely")
	}
}
