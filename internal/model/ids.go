// Package model defines the data structures shared by the editor protocol layers.
package model

import "fmt"

// NodeID identifies a node. IDs are assigned by the caller and must be
// unique among nodes within a frame.
type NodeID int32

// LinkID identifies a declared link between two pins.
type LinkID int32

// AttributeID identifies a static (non-connectable) node attribute.
type AttributeID int32

// InputPinID identifies an input pin on a node.
type InputPinID int32

// OutputPinID identifies an output pin on a node.
type OutputPinID int32

// PinID identifies a pin of either direction. Queries that are symmetric
// over pin directionality (hover, drag origin) report plain PinIDs because
// the underlying subsystem does not distinguish direction in its answers.
type PinID int32

// Pin is satisfied by any pin identifier kind. It replaces per-kind
// overloads on operations that accept either direction.
type Pin interface {
	Pin() PinID
}

// Pin implements Pin.
func (p PinID) Pin() PinID { return p }

// Pin implements Pin.
func (p InputPinID) Pin() PinID { return PinID(p) }

// Pin implements Pin.
func (p OutputPinID) Pin() PinID { return PinID(p) }

// PinShape selects the glyph drawn for a pin.
type PinShape int32

// Available pin shapes.
const (
	ShapeCircle PinShape = iota
	ShapeCircleFilled
	ShapeTriangle
	ShapeTriangleFilled
	ShapeQuad
	ShapeQuadFilled
)

var shapeNames = map[PinShape]string{
	ShapeCircle:         "circle",
	ShapeCircleFilled:   "circle-filled",
	ShapeTriangle:       "triangle",
	ShapeTriangleFilled: "triangle-filled",
	ShapeQuad:           "quad",
	ShapeQuadFilled:     "quad-filled",
}

// String returns the YAML-facing name of the shape.
func (s PinShape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("shape(%d)", int32(s))
}

// ParsePinShape parses a shape name as used in scene files. The empty
// string maps to ShapeCircleFilled, the default glyph.
func ParsePinShape(name string) (PinShape, error) {
	if name == "" {
		return ShapeCircleFilled, nil
	}

	for shape, n := range shapeNames {
		if n == name {
			return shape, nil
		}
	}

	return ShapeCircle, fmt.Errorf("unknown pin shape: %q", name)
}
