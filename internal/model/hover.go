package model

// HoverQuery is the slice of the backend surface needed for hover tests.
// Each query reports the identifier of the single hovered element of that
// kind, or ok=false when nothing of that kind is under the pointer.
type HoverQuery interface {
	HoveredNode() (int32, bool)
	HoveredPin() (int32, bool)
	HoveredLink() (int32, bool)
}

// Hoverable is the capability of being tested against the pointer
// position of the last completed frame. Every identifier kind implements
// it, so one hover operation covers them all.
type Hoverable interface {
	Hovered(q HoverQuery) bool
}

// Hovered implements Hoverable.
func (n NodeID) Hovered(q HoverQuery) bool {
	id, ok := q.HoveredNode()
	return ok && id == int32(n)
}

// Hovered implements Hoverable.
func (l LinkID) Hovered(q HoverQuery) bool {
	id, ok := q.HoveredLink()
	return ok && id == int32(l)
}

// Hovered implements Hoverable.
func (p PinID) Hovered(q HoverQuery) bool {
	id, ok := q.HoveredPin()
	return ok && id == int32(p)
}

// Hovered implements Hoverable.
func (p InputPinID) Hovered(q HoverQuery) bool {
	return p.Pin().Hovered(q)
}

// Hovered implements Hoverable.
func (p OutputPinID) Hovered(q HoverQuery) bool {
	return p.Pin().Hovered(q)
}
