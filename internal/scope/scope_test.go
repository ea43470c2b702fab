package scope

import (
	"strings"
	"testing"

	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
)

// drawPatch draws the standard two-node test patch: node 1 with output
// pin 10, node 2 with input pin 20 and static attribute 21.
func drawPatch(b adapter.Backend, ctx adapter.Context) None {
	return Enter(b, ctx, func(ed Editor) {
		ed.Node(1, func(n Node) {
			n.TitleBar(func() {})
			n.Output(10, m.ShapeCircleFilled, func() {})
		})

		ed.Node(2, func(n Node) {
			n.TitleBar(func() {})
			n.Input(20, m.ShapeTriangle, func() {})
			n.Attribute(21, func() {})
		})
	})
}

func TestEnter(t *testing.T) {
	t.Run("returns a None token for an empty block", func(t *testing.T) {
		sim := adapter.NewSim()

		outside := Enter(sim, sim.Context(), func(Editor) {})

		if _, ok := outside.LinksCreated(); ok {
			t.Error("expected no created link on an empty frame")
		}
	})

	t.Run("returns a None token after many node regions", func(t *testing.T) {
		sim := adapter.NewSim()

		outside := Enter(sim, sim.Context(), func(ed Editor) {
			for id := int32(1); id <= 10; id++ {
				ed.Node(m.NodeID(id), func(Node) {})
			}
		})

		if outside.NumSelectedNodes() != 0 {
			t.Error("expected empty selection")
		}

		if sim.Frames() != 1 {
			t.Errorf("expected 1 completed frame, got %d", sim.Frames())
		}
	})

	t.Run("panics on re-entry while a region is open", func(t *testing.T) {
		sim := adapter.NewSim()

		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic on re-entrant Enter")
			}

			msg, ok := r.(string)
			if !ok || !strings.Contains(msg, "already open") {
				t.Fatalf("unexpected panic value: %v", r)
			}
		}()

		Enter(sim, sim.Context(), func(Editor) {
			Enter(sim, sim.Context(), func(Editor) {})
		})
	})

	t.Run("releases the region guard after a panicking block", func(t *testing.T) {
		sim := adapter.NewSim()
		trace := adapter.NewTrace(sim)

		func() {
			defer func() { _ = recover() }()

			Enter(trace, sim.Context(), func(ed Editor) {
				ed.Node(1, func(Node) {
					panic("boom")
				})
			})
		}()

		if ok, at := trace.WellNested(); !ok {
			t.Fatalf("bracket sequence unbalanced after panic, at call %d: %v", at, trace.Calls())
		}

		// The editor must be enterable again.
		Enter(sim, sim.Context(), func(Editor) {})
	})
}

func TestWellNestedness(t *testing.T) {
	sim := adapter.NewSim()
	trace := adapter.NewTrace(sim)

	drawPatch(trace, sim.Context())

	ok, at := trace.WellNested()
	if !ok {
		t.Fatalf("bracket sequence unbalanced at call %d: %v", at, trace.Calls())
	}

	calls := trace.Calls()
	if calls[0].Op != "BeginEditor" || calls[len(calls)-1].Op != "EndEditor" {
		t.Errorf("editor region must bracket the whole frame, got %v", calls)
	}
}

func TestSentinelTranslation(t *testing.T) {
	sim := adapter.NewSim()
	outside := drawPatch(sim, sim.Context())

	if link, ok := outside.LinksCreated(); ok {
		t.Errorf("expected no created link, got %+v", link)
	}

	if id, ok := outside.DroppedLink(); ok {
		t.Errorf("expected no dropped link, got %d", id)
	}

	if id, ok := outside.HoveredPin(); ok {
		t.Errorf("expected no hovered pin, got %d", id)
	}

	if id, ok := outside.HoveredLink(); ok {
		t.Errorf("expected no hovered link, got %d", id)
	}

	if id, ok := outside.ActiveAttribute(); ok {
		t.Errorf("expected no active attribute, got %d", id)
	}

	if id, ok := outside.LinkStartPin(); ok {
		t.Errorf("expected no drag in progress, got %d", id)
	}

	if id, ok := outside.LinkDropPin(true); ok {
		t.Errorf("expected no dropped drag, got %d", id)
	}
}

func TestSelection(t *testing.T) {
	t.Run("returns exactly the selected IDs", func(t *testing.T) {
		sim := adapter.NewSim()
		sim.SelectNodes(5, 7, 9)
		sim.SelectLinks(100)

		outside := drawPatch(sim, sim.Context())

		if got := outside.NumSelectedNodes(); got != 3 {
			t.Fatalf("expected 3 selected nodes, got %d", got)
		}

		nodes := outside.SelectedNodes()
		want := []m.NodeID{5, 7, 9}

		for i, id := range want {
			if nodes[i] != id {
				t.Errorf("selected node %d: expected %d, got %d", i, id, nodes[i])
			}
		}

		links := outside.SelectedLinks()
		if len(links) != 1 || links[0] != 100 {
			t.Errorf("expected selected link 100, got %v", links)
		}
	})

	t.Run("selected nodes with count 0 is a contract violation", func(t *testing.T) {
		sim := adapter.NewSim()
		outside := drawPatch(sim, sim.Context())

		defer func() {
			if recover() == nil {
				t.Fatal("expected panic on zero-count selection retrieval")
			}
		}()

		outside.SelectedNodes()
	})

	t.Run("selected links with count 0 is a contract violation", func(t *testing.T) {
		sim := adapter.NewSim()
		outside := drawPatch(sim, sim.Context())

		defer func() {
			if recover() == nil {
				t.Fatal("expected panic on zero-count selection retrieval")
			}
		}()

		outside.SelectedLinks()
	})
}

func TestAddLinkIsNotReportedAsCreated(t *testing.T) {
	sim := adapter.NewSim()

	Enter(sim, sim.Context(), func(ed Editor) {
		ed.Node(1, func(n Node) { n.Output(10, m.ShapeCircleFilled, func() {}) })
		ed.Node(2, func(n Node) { n.Input(20, m.ShapeTriangle, func() {}) })
		ed.AddLink(100, 20, 10)
	})

	// Next frame: nothing user-driven happened, so no link was "created".
	outside := drawPatch(sim, sim.Context())

	if link, ok := outside.LinksCreated(); ok {
		t.Errorf("declared link reported as created: %+v", link)
	}
}

func TestDragCreatesLink(t *testing.T) {
	sim := adapter.NewSim()

	// Frame 1 declares pins 10 (output, node 1) and 20 (input, node 2).
	drawPatch(sim, sim.Context())

	// The user drags from pin 10 onto pin 20.
	sim.CompleteDrag(10, 20, false)

	outside := drawPatch(sim, sim.Context())

	link, ok := outside.LinksCreated()
	if !ok {
		t.Fatal("expected a created link")
	}

	want := m.Link{StartNode: 1, EndNode: 2, StartPin: 10, EndPin: 20, FromSnap: false}
	if link != want {
		t.Errorf("expected %+v, got %+v", want, link)
	}
}

func TestHoverIsPolymorphic(t *testing.T) {
	sim := adapter.NewSim()

	sim.HoverNode(1)
	outside := drawPatch(sim, sim.Context())

	if !outside.IsHovered(m.NodeID(1)) {
		t.Error("node 1 should be hovered")
	}

	if outside.IsHovered(m.NodeID(2)) {
		t.Error("node 2 should not be hovered")
	}

	if outside.IsHovered(m.OutputPinID(10)) {
		t.Error("no pin should be hovered while a node is")
	}

	sim.HoverPin(10)
	outside = drawPatch(sim, sim.Context())

	if !outside.IsHovered(m.OutputPinID(10)) {
		t.Error("pin 10 should be hovered via its output ID")
	}

	if !outside.IsHovered(m.PinID(10)) {
		t.Error("pin 10 should be hovered via its direction-erased ID")
	}

	if id, ok := outside.HoveredPin(); !ok || id != 10 {
		t.Errorf("expected hovered pin 10, got %d (ok=%v)", id, ok)
	}

	sim.HoverLink(100)
	outside = drawPatch(sim, sim.Context())

	if !outside.IsHovered(m.LinkID(100)) {
		t.Error("link 100 should be hovered")
	}

	if id, ok := outside.HoveredLink(); !ok || id != 100 {
		t.Errorf("expected hovered link 100, got %d (ok=%v)", id, ok)
	}
}

func TestDragStartAndDrop(t *testing.T) {
	sim := adapter.NewSim()
	drawPatch(sim, sim.Context())

	sim.StartDrag(10)
	outside := drawPatch(sim, sim.Context())

	if !outside.LinkStartedAt(m.OutputPinID(10)) {
		t.Error("drag should report pin 10 as its origin")
	}

	if outside.LinkStartedAt(m.InputPinID(20)) {
		t.Error("drag did not start at pin 20")
	}

	if id, ok := outside.LinkStartPin(); !ok || id != 10 {
		t.Errorf("expected drag origin 10, got %d (ok=%v)", id, ok)
	}

	// The drag is dropped after detaching from an existing link; it only
	// counts when detached drops are included.
	sim.DropDrag(true)
	outside = drawPatch(sim, sim.Context())

	if outside.LinkDroppedFrom(m.OutputPinID(10), false) {
		t.Error("detached drop must not count without includeDetached")
	}

	if !outside.LinkDroppedFrom(m.OutputPinID(10), true) {
		t.Error("detached drop should count with includeDetached")
	}

	if id, ok := outside.LinkDropPin(true); !ok || id != 10 {
		t.Errorf("expected drop origin 10, got %d (ok=%v)", id, ok)
	}

	if _, ok := outside.LinkStartPin(); ok {
		t.Error("no drag should be in progress after the drop")
	}
}

func TestEditorScopeQueries(t *testing.T) {
	sim := adapter.NewSim()

	sim.HoverBackground()
	sim.ActivateAttribute(21)

	var editorHovered bool
	var active m.AttributeID
	var activeOK bool

	Enter(sim, sim.Context(), func(ed Editor) {
		editorHovered = ed.IsHovered()
		active, activeOK = ed.ActiveAttribute()
	})

	if !editorHovered {
		t.Error("editor background should be hovered")
	}

	if !activeOK || active != 21 {
		t.Errorf("expected active attribute 21, got %d (ok=%v)", active, activeOK)
	}

	sim.HoverNode(1)

	Enter(sim, sim.Context(), func(ed Editor) {
		if ed.IsHovered() {
			t.Error("editor background is not hovered while a node is")
		}
	})
}

func TestDestroyedLink(t *testing.T) {
	sim := adapter.NewSim()
	drawPatch(sim, sim.Context())

	sim.DestroyLink(100)
	outside := drawPatch(sim, sim.Context())

	id, ok := outside.DroppedLink()
	if !ok || id != 100 {
		t.Fatalf("expected destroyed link 100, got %d (ok=%v)", id, ok)
	}

	// The event is gone once the next frame completes.
	outside = drawPatch(sim, sim.Context())
	if _, ok := outside.DroppedLink(); ok {
		t.Error("destroyed-link event should not survive into the next frame")
	}
}
