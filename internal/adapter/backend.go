// Package adapter provides the native call surface port of the node editor
// and the backends that implement it.
package adapter

import m "github.com/vyorkin/patchbay/internal/model"

// Context is an editor context as seen by this layer. Its only required
// operation is becoming the current context for the process; everything
// else about it belongs to the backend.
type Context interface {
	MakeCurrent()
}

// LinkEvent is the raw shape of a completed drag as reported by the
// backend: the owning nodes and pins of both ends, still as bare integers.
type LinkEvent struct {
	StartNode int32
	StartPin  int32
	EndNode   int32
	EndPin    int32
	FromSnap  bool
}

// Backend is the call surface of the underlying immediate-mode node editor.
//
// Bracket primitives must be called in properly nested begin/end pairs; a
// conforming backend is free to assert on violations, so sequencing them
// correctly is the scope layer's job. Query primitives use comma-ok
// returns: when ok is false the accompanying value is meaningless (a
// native backend conventionally reports -1 there) and must not be used.
type Backend interface {
	m.HoverQuery

	BeginEditor()
	EndEditor()

	BeginNode(id int32)
	EndNode()

	BeginNodeTitleBar()
	EndNodeTitleBar()

	BeginInputAttribute(id int32, shape int32)
	EndInputAttribute()

	BeginOutputAttribute(id int32, shape int32)
	EndOutputAttribute()

	BeginStaticAttribute(id int32)
	EndStaticAttribute()

	// Link declares a persistent link between two previously declared
	// pins. Not bracketed; legal inside the editor region only.
	Link(id, input, output int32)

	IsEditorHovered() bool
	ActiveAttribute() (int32, bool)

	// LinkStarted reports the origin pin of an in-progress drag.
	LinkStarted() (int32, bool)
	// LinkDropped reports the origin pin of a drag that ended without
	// forming a connection. includeDetached also counts drags that were
	// detached from an existing link before being dropped.
	LinkDropped(includeDetached bool) (int32, bool)
	// LinkCreated reports a drag completed into a new connection during
	// the last frame.
	LinkCreated() (LinkEvent, bool)
	// LinkDestroyed reports a link detached and destroyed during the
	// last frame.
	LinkDestroyed() (int32, bool)

	NumSelectedNodes() int32
	NumSelectedLinks() int32
	// SelectedNodes fills buf with the selected node IDs; buf must be
	// sized by NumSelectedNodes.
	SelectedNodes(buf []int32)
	// SelectedLinks fills buf with the selected link IDs; buf must be
	// sized by NumSelectedLinks.
	SelectedLinks(buf []int32)
}
