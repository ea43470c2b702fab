package model

// FrameReport aggregates the observable outcome of one drawn frame, taken
// from the outside-any-region queries after the editor region closed.
// Nil pointer fields mean the corresponding query reported nothing.
type FrameReport struct {
	Frame int

	Created   *Link
	Destroyed *LinkID

	HoveredPin      *PinID
	HoveredLink     *LinkID
	ActiveAttribute *AttributeID

	DragFrom *PinID
	DropFrom *PinID

	SelectedNodes []NodeID
	SelectedLinks []LinkID
}

// Eventful reports whether anything observable happened this frame.
func (r FrameReport) Eventful() bool {
	return r.Created != nil || r.Destroyed != nil ||
		r.HoveredPin != nil || r.HoveredLink != nil ||
		r.ActiveAttribute != nil || r.DragFrom != nil || r.DropFrom != nil ||
		len(r.SelectedNodes) > 0 || len(r.SelectedLinks) > 0
}
