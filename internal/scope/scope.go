// Package scope enforces the begin/end call protocol of the node editor.
//
// The underlying editor only allows certain calls while certain regions
// are open. Each nesting level is modeled as a token type (None, Editor,
// Node) exposing exactly the operations legal at that level. Tokens have
// no public constructors: an Editor token exists only inside Enter, a
// Node token only inside Editor.Node, and a None token is handed back
// once the editor region has closed. A token must not be retained past
// the block it was passed to; region closes are deferred, so a panicking
// block still leaves the underlying region stack balanced.
package scope

import (
	"sync/atomic"

	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
)

// The process may have at most one editor region open at a time; the
// underlying subsystem keeps a single current-context slot.
var editorOpen atomic.Bool

// Enter makes ctx the current editor context, opens the outermost editor
// region, runs fn with a fresh Editor token, and closes the region again.
// The region is closed even if fn panics. The returned None token proves
// the region is closed; only last-frame queries remain available on it.
//
// Enter panics if called while an editor region is already open.
func Enter(b adapter.Backend, ctx adapter.Context, fn func(Editor)) None {
	if !editorOpen.CompareAndSwap(false, true) {
		panic("scope: Enter called while an editor region is already open")
	}

	ctx.MakeCurrent()
	b.BeginEditor()

	defer func() {
		b.EndEditor()
		editorOpen.Store(false)
	}()

	fn(Editor{b: b})

	return None{b: b}
}

// None is the scope outside any region. Its queries read the state of the
// last completed frame.
type None struct {
	b adapter.Backend
}

// IsHovered reports whether the element behind id is under the pointer.
// It works uniformly over node, link and pin identifiers.
func (s None) IsHovered(id m.Hoverable) bool {
	return id.Hovered(s.b)
}

// LinkStartedAt reports whether the in-progress drag originated at pin.
func (s None) LinkStartedAt(pin m.Pin) bool {
	id, ok := s.b.LinkStarted()
	return ok && m.PinID(id) == pin.Pin()
}

// LinkDroppedFrom reports whether a drag that ended without forming a
// connection originated at pin. includeDetached also counts drags that
// detached a pin from an existing link first.
func (s None) LinkDroppedFrom(pin m.Pin, includeDetached bool) bool {
	id, ok := s.b.LinkDropped(includeDetached)
	return ok && m.PinID(id) == pin.Pin()
}

// NumSelectedNodes returns the number of currently selected nodes.
func (s None) NumSelectedNodes() int {
	return int(s.b.NumSelectedNodes())
}

// NumSelectedLinks returns the number of currently selected links.
func (s None) NumSelectedLinks() int {
	return int(s.b.NumSelectedLinks())
}

// SelectedNodes returns the selected node IDs in subsystem order. The
// order is not stable across frames.
//
// Calling it while the selection is empty is a contract violation and
// panics; check NumSelectedNodes first.
func (s None) SelectedNodes() []m.NodeID {
	count := s.b.NumSelectedNodes()
	if count == 0 {
		panic("scope: queried selected nodes with count 0")
	}

	buf := make([]int32, count)
	s.b.SelectedNodes(buf)

	ids := make([]m.NodeID, count)
	for i, id := range buf {
		ids[i] = m.NodeID(id)
	}

	return ids
}

// SelectedLinks returns the selected link IDs in subsystem order.
//
// Calling it while the selection is empty is a contract violation and
// panics; check NumSelectedLinks first.
func (s None) SelectedLinks() []m.LinkID {
	count := s.b.NumSelectedLinks()
	if count == 0 {
		panic("scope: queried selected links with count 0")
	}

	buf := make([]int32, count)
	s.b.SelectedLinks(buf)

	ids := make([]m.LinkID, count)
	for i, id := range buf {
		ids[i] = m.LinkID(id)
	}

	return ids
}

// LinksCreated returns the link the user completed by dragging during the
// last frame. Links declared through Editor.AddLink are never reported
// here; only drag-driven connections are.
func (s None) LinksCreated() (m.Link, bool) {
	ev, ok := s.b.LinkCreated()
	if !ok {
		return m.Link{}, false
	}

	return m.Link{
		StartNode: m.NodeID(ev.StartNode),
		EndNode:   m.NodeID(ev.EndNode),
		StartPin:  m.OutputPinID(ev.StartPin),
		EndPin:    m.InputPinID(ev.EndPin),
		FromSnap:  ev.FromSnap,
	}, true
}

// DroppedLink returns the link the user detached and destroyed during the
// last frame.
func (s None) DroppedLink() (m.LinkID, bool) {
	id, ok := s.b.LinkDestroyed()
	if !ok {
		return 0, false
	}

	return m.LinkID(id), true
}

// HoveredPin returns the pin under the pointer, if any.
func (s None) HoveredPin() (m.PinID, bool) {
	id, ok := s.b.HoveredPin()
	if !ok {
		return 0, false
	}

	return m.PinID(id), true
}

// HoveredLink returns the link under the pointer, if any.
func (s None) HoveredLink() (m.LinkID, bool) {
	id, ok := s.b.HoveredLink()
	if !ok {
		return 0, false
	}

	return m.LinkID(id), true
}

// ActiveAttribute returns the attribute currently being edited, if any.
func (s None) ActiveAttribute() (m.AttributeID, bool) {
	id, ok := s.b.ActiveAttribute()
	if !ok {
		return 0, false
	}

	return m.AttributeID(id), true
}

// LinkStartPin returns the origin pin of the in-progress drag, if any.
func (s None) LinkStartPin() (m.PinID, bool) {
	id, ok := s.b.LinkStarted()
	if !ok {
		return 0, false
	}

	return m.PinID(id), true
}

// LinkDropPin returns the origin pin of a drag dropped without forming a
// connection during the last frame, if any.
func (s None) LinkDropPin(includeDetached bool) (m.PinID, bool) {
	id, ok := s.b.LinkDropped(includeDetached)
	if !ok {
		return 0, false
	}

	return m.PinID(id), true
}

// Editor is the scope inside the outermost editor region.
type Editor struct {
	b adapter.Backend
}

// Node opens the region of the node identified by id, runs fn with a
// fresh Node token, and closes the region again, even if fn panics.
func (s Editor) Node(id m.NodeID, fn func(Node)) {
	s.b.BeginNode(int32(id))
	defer s.b.EndNode()

	fn(Node{b: s.b})
}

// AddLink declares a persistent link between a declared input and output
// pin. The id tags the link for later selection and destruction queries.
// Declared links are not reported by None.LinksCreated.
func (s Editor) AddLink(id m.LinkID, input m.InputPinID, output m.OutputPinID) {
	s.b.Link(int32(id), int32(input), int32(output))
}

// ActiveAttribute returns the attribute currently being edited, if any.
// Inside the editor region the subsystem answers from the frame being
// built, unlike the identically named query outside.
func (s Editor) ActiveAttribute() (m.AttributeID, bool) {
	id, ok := s.b.ActiveAttribute()
	if !ok {
		return 0, false
	}

	return m.AttributeID(id), true
}

// IsHovered reports whether the editor background, rather than any
// specific element, is under the pointer.
func (s Editor) IsHovered() bool {
	return s.b.IsEditorHovered()
}

// Node is the scope inside a node's region. The sub-regions it opens
// yield no further token: nothing below a node needs distinguishing.
type Node struct {
	b adapter.Backend
}

// TitleBar brackets the node's title bar; fn draws its content.
func (s Node) TitleBar(fn func()) {
	s.b.BeginNodeTitleBar()
	defer s.b.EndNodeTitleBar()

	fn()
}

// Input brackets an input pin region tagged with id; fn draws its content.
func (s Node) Input(id m.InputPinID, shape m.PinShape, fn func()) {
	s.b.BeginInputAttribute(int32(id), int32(shape))
	defer s.b.EndInputAttribute()

	fn()
}

// Output brackets an output pin region tagged with id; fn draws its content.
func (s Node) Output(id m.OutputPinID, shape m.PinShape, fn func()) {
	s.b.BeginOutputAttribute(int32(id), int32(shape))
	defer s.b.EndOutputAttribute()

	fn()
}

// Attribute brackets a static, non-connectable attribute region.
func (s Node) Attribute(id m.AttributeID, fn func()) {
	s.b.BeginStaticAttribute(int32(id))
	defer s.b.EndStaticAttribute()

	fn()
}
