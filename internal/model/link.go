package model

// Link describes a connection the user completed by dragging between two
// pins during the last frame. It is a transient query result: persisting
// links across frames is the caller's job, normally by re-declaring them
// each frame.
type Link struct {
	StartNode NodeID
	EndNode   NodeID
	StartPin  OutputPinID
	EndPin    InputPinID

	// FromSnap is true when the link snapped to a nearby compatible pin
	// instead of being dropped exactly on it.
	FromSnap bool
}
