package adapter

import (
	"fmt"
	"log/slog"
)

// none is the sentinel the simulated native side uses for "no element".
const none int32 = -1

type region int

const (
	regionEditor region = iota
	regionNode
	regionTitleBar
	regionInputAttr
	regionOutputAttr
	regionStaticAttr
)

var regionNames = map[region]string{
	regionEditor:     "editor",
	regionNode:       "node",
	regionTitleBar:   "title bar",
	regionInputAttr:  "input attribute",
	regionOutputAttr: "output attribute",
	regionStaticAttr: "static attribute",
}

func (r region) String() string { return regionNames[r] }

// DeclaredLink is a link declared through Link during the last completed
// frame.
type DeclaredLink struct {
	ID     int32
	Input  int32
	Output int32
}

type pendingConnect struct {
	from int32
	to   int32
	snap bool
}

type pendingDrop struct {
	pin      int32
	detached bool
}

// frameDecls holds what one frame declared: pin ownership and links.
type frameDecls struct {
	pinOwner map[int32]int32 // pin -> owning node
	inputs   map[int32]bool
	links    []DeclaredLink
}

func newFrameDecls() frameDecls {
	return frameDecls{
		pinOwner: make(map[int32]int32),
		inputs:   make(map[int32]bool),
	}
}

// Sim is an in-memory Backend. It keeps the frame state a native editor
// would keep (declarations, hover, selection, drag lifecycle) and enforces
// the bracket protocol the same way the native side does: any begin/end
// mismatch panics immediately.
//
// Interaction is injected through the Hover*/Select*/Drag* methods, which
// stage events exactly like pointer input would: state (hover, selection,
// an in-progress drag) is visible right away, while one-frame events
// (connect, drop, destroy) become visible once the next frame completes.
//
// A Sim is not safe for concurrent use; the protocol it simulates is
// single-threaded.
type Sim struct {
	stack   []region
	curNode int32

	cur  frameDecls // declarations of the frame being drawn
	last frameDecls // declarations of the last completed frame

	frames int

	hovNode int32
	hovPin  int32
	hovLink int32

	selNodes []int32
	selLinks []int32

	editorHovered bool
	activeAttr    int32

	dragFrom int32

	connect *pendingConnect
	drop    *pendingDrop
	destroy int32

	created   *LinkEvent
	dropped   *pendingDrop
	destroyed int32

	ctxCurrent bool
}

// NewSim creates a Sim with no frame drawn yet.
func NewSim() *Sim {
	return &Sim{
		cur:        newFrameDecls(),
		last:       newFrameDecls(),
		hovNode:    none,
		hovPin:     none,
		hovLink:    none,
		activeAttr: none,
		dragFrom:   none,
		destroy:    none,
		destroyed:  none,
	}
}

type simContext struct{ s *Sim }

// MakeCurrent implements Context.
func (c simContext) MakeCurrent() { c.s.ctxCurrent = true }

// Context returns the editor context owned by this Sim.
func (s *Sim) Context() Context { return simContext{s} }

// Frames returns how many frames have completed.
func (s *Sim) Frames() int { return s.frames }

func (s *Sim) push(r region) { s.stack = append(s.stack, r) }

func (s *Sim) pop(r region) {
	if len(s.stack) == 0 {
		panic(fmt.Sprintf("sim: end %s with no open region", r))
	}

	top := s.stack[len(s.stack)-1]
	if top != r {
		panic(fmt.Sprintf("sim: end %s while inside %s", r, top))
	}

	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Sim) requireTop(want region, op string) {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1] != want {
		panic(fmt.Sprintf("sim: %s outside %s region", op, want))
	}
}

// BeginEditor implements Backend.
func (s *Sim) BeginEditor() {
	if !s.ctxCurrent {
		panic("sim: no current editor context")
	}

	if len(s.stack) != 0 {
		panic(fmt.Sprintf("sim: begin editor while inside %s", s.stack[len(s.stack)-1]))
	}

	s.push(regionEditor)
	s.cur = newFrameDecls()
}

// EndEditor implements Backend. It commits the frame's declarations and
// promotes staged interaction events into query-visible results.
func (s *Sim) EndEditor() {
	s.pop(regionEditor)

	s.last = s.cur
	s.frames++

	s.created = nil
	s.dropped = nil
	s.destroyed = none

	if s.connect != nil {
		s.created = s.resolveConnect(*s.connect)
		s.connect = nil
	}

	if s.drop != nil {
		s.dropped = s.drop
		s.drop = nil
	}

	if s.destroy != none {
		s.destroyed = s.destroy
		s.destroy = none
	}
}

func (s *Sim) resolveConnect(c pendingConnect) *LinkEvent {
	fromNode, ok := s.last.pinOwner[c.from]
	if !ok {
		slog.Warn("drag origin pin not declared this frame", "pin", c.from)
		return nil
	}

	toNode, ok := s.last.pinOwner[c.to]
	if !ok {
		slog.Warn("drag target pin not declared this frame", "pin", c.to)
		return nil
	}

	return &LinkEvent{
		StartNode: fromNode,
		StartPin:  c.from,
		EndNode:   toNode,
		EndPin:    c.to,
		FromSnap:  c.snap,
	}
}

// BeginNode implements Backend.
func (s *Sim) BeginNode(id int32) {
	s.requireTop(regionEditor, "begin node")
	s.push(regionNode)
	s.curNode = id
}

// EndNode implements Backend.
func (s *Sim) EndNode() { s.pop(regionNode) }

// BeginNodeTitleBar implements Backend.
func (s *Sim) BeginNodeTitleBar() {
	s.requireTop(regionNode, "begin title bar")
	s.push(regionTitleBar)
}

// EndNodeTitleBar implements Backend.
func (s *Sim) EndNodeTitleBar() { s.pop(regionTitleBar) }

// BeginInputAttribute implements Backend.
func (s *Sim) BeginInputAttribute(id int32, _ int32) {
	s.requireTop(regionNode, "begin input attribute")
	s.push(regionInputAttr)
	s.cur.pinOwner[id] = s.curNode
	s.cur.inputs[id] = true
}

// EndInputAttribute implements Backend.
func (s *Sim) EndInputAttribute() { s.pop(regionInputAttr) }

// BeginOutputAttribute implements Backend.
func (s *Sim) BeginOutputAttribute(id int32, _ int32) {
	s.requireTop(regionNode, "begin output attribute")
	s.push(regionOutputAttr)
	s.cur.pinOwner[id] = s.curNode
}

// EndOutputAttribute implements Backend.
func (s *Sim) EndOutputAttribute() { s.pop(regionOutputAttr) }

// BeginStaticAttribute implements Backend.
func (s *Sim) BeginStaticAttribute(_ int32) {
	s.requireTop(regionNode, "begin static attribute")
	s.push(regionStaticAttr)
}

// EndStaticAttribute implements Backend.
func (s *Sim) EndStaticAttribute() { s.pop(regionStaticAttr) }

// Link implements Backend.
func (s *Sim) Link(id, input, output int32) {
	s.requireTop(regionEditor, "link")
	s.cur.links = append(s.cur.links, DeclaredLink{ID: id, Input: input, Output: output})
}

// HoveredNode implements Backend.
func (s *Sim) HoveredNode() (int32, bool) { return s.hovNode, s.hovNode != none }

// HoveredPin implements Backend.
func (s *Sim) HoveredPin() (int32, bool) { return s.hovPin, s.hovPin != none }

// HoveredLink implements Backend.
func (s *Sim) HoveredLink() (int32, bool) { return s.hovLink, s.hovLink != none }

// IsEditorHovered implements Backend.
func (s *Sim) IsEditorHovered() bool {
	return s.editorHovered && s.hovNode == none && s.hovPin == none && s.hovLink == none
}

// ActiveAttribute implements Backend.
func (s *Sim) ActiveAttribute() (int32, bool) { return s.activeAttr, s.activeAttr != none }

// LinkStarted implements Backend.
func (s *Sim) LinkStarted() (int32, bool) { return s.dragFrom, s.dragFrom != none }

// LinkDropped implements Backend.
func (s *Sim) LinkDropped(includeDetached bool) (int32, bool) {
	if s.dropped == nil {
		return none, false
	}

	if s.dropped.detached && !includeDetached {
		return none, false
	}

	return s.dropped.pin, true
}

// LinkCreated implements Backend.
func (s *Sim) LinkCreated() (LinkEvent, bool) {
	if s.created == nil {
		return LinkEvent{StartNode: none, StartPin: none, EndNode: none, EndPin: none}, false
	}

	return *s.created, true
}

// LinkDestroyed implements Backend.
func (s *Sim) LinkDestroyed() (int32, bool) { return s.destroyed, s.destroyed != none }

// NumSelectedNodes implements Backend.
func (s *Sim) NumSelectedNodes() int32 { return int32(len(s.selNodes)) }

// NumSelectedLinks implements Backend.
func (s *Sim) NumSelectedLinks() int32 { return int32(len(s.selLinks)) }

// SelectedNodes implements Backend.
func (s *Sim) SelectedNodes(buf []int32) { copy(buf, s.selNodes) }

// SelectedLinks implements Backend.
func (s *Sim) SelectedLinks(buf []int32) { copy(buf, s.selLinks) }

// HoverNode moves the simulated pointer over the given node.
func (s *Sim) HoverNode(id int32) {
	s.clearHover()
	s.hovNode = id
}

// HoverPin moves the simulated pointer over the given pin.
func (s *Sim) HoverPin(id int32) {
	s.clearHover()
	s.hovPin = id
}

// HoverLink moves the simulated pointer over the given link.
func (s *Sim) HoverLink(id int32) {
	s.clearHover()
	s.hovLink = id
}

// HoverBackground moves the simulated pointer over empty editor canvas.
func (s *Sim) HoverBackground() {
	s.clearHover()
	s.editorHovered = true
}

// ClearHover moves the simulated pointer outside the editor.
func (s *Sim) ClearHover() {
	s.clearHover()
}

func (s *Sim) clearHover() {
	s.hovNode = none
	s.hovPin = none
	s.hovLink = none
	s.editorHovered = false
}

// SelectNodes replaces the node selection.
func (s *Sim) SelectNodes(ids ...int32) { s.selNodes = append([]int32(nil), ids...) }

// SelectLinks replaces the link selection.
func (s *Sim) SelectLinks(ids ...int32) { s.selLinks = append([]int32(nil), ids...) }

// ActivateAttribute marks an attribute as actively edited.
func (s *Sim) ActivateAttribute(id int32) { s.activeAttr = id }

// DeactivateAttribute clears the active attribute.
func (s *Sim) DeactivateAttribute() { s.activeAttr = none }

// StartDrag begins a drag from the given pin. The drag stays in progress
// until dropped or completed.
func (s *Sim) StartDrag(pin int32) { s.dragFrom = pin }

// DropDrag abandons the in-progress drag without forming a connection.
// detached marks drags that tore a pin off an existing link first.
func (s *Sim) DropDrag(detached bool) {
	if s.dragFrom == none {
		return
	}

	s.drop = &pendingDrop{pin: s.dragFrom, detached: detached}
	s.dragFrom = none
}

// CompleteDrag finishes a drag from an output pin onto an input pin. The
// created link becomes visible to queries once the next frame completes,
// with both end nodes resolved from that frame's pin declarations.
func (s *Sim) CompleteDrag(from, to int32, snap bool) {
	s.connect = &pendingConnect{from: from, to: to, snap: snap}
	s.dragFrom = none
}

// DestroyLink detaches and destroys a declared link.
func (s *Sim) DestroyLink(id int32) { s.destroy = id }

// DeclaredLinks returns the links declared during the last completed frame.
func (s *Sim) DeclaredLinks() []DeclaredLink {
	return append([]DeclaredLink(nil), s.last.links...)
}

// PinOwner returns the node that declared the given pin last frame.
func (s *Sim) PinOwner(pin int32) (int32, bool) {
	owner, ok := s.last.pinOwner[pin]
	return owner, ok
}

// IsInputPin reports whether the pin was declared as an input last frame.
func (s *Sim) IsInputPin(pin int32) bool { return s.last.inputs[pin] }
