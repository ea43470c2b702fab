package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinConversions(t *testing.T) {
	input := InputPinID(20)
	output := OutputPinID(10)

	assert.Equal(t, PinID(20), input.Pin())
	assert.Equal(t, PinID(10), output.Pin())
	assert.Equal(t, PinID(10), PinID(10).Pin())

	// Both directions erase to the same PinID space.
	assert.Equal(t, InputPinID(5).Pin(), OutputPinID(5).Pin())
}

func TestParsePinShape(t *testing.T) {
	tests := []struct {
		name  string
		want  PinShape
		isErr bool
	}{
		{"circle", ShapeCircle, false},
		{"circle-filled", ShapeCircleFilled, false},
		{"triangle", ShapeTriangle, false},
		{"triangle-filled", ShapeTriangleFilled, false},
		{"quad", ShapeQuad, false},
		{"quad-filled", ShapeQuadFilled, false},
		{"", ShapeCircleFilled, false},
		{"hexagon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePinShape(tt.name)
			if tt.isErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.name != "" {
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

// stubHover reports fixed hover targets; -1 means none.
type stubHover struct {
	node int32
	pin  int32
	link int32
}

func (s stubHover) HoveredNode() (int32, bool) { return s.node, s.node != -1 }
func (s stubHover) HoveredPin() (int32, bool)  { return s.pin, s.pin != -1 }
func (s stubHover) HoveredLink() (int32, bool) { return s.link, s.link != -1 }

func TestHoverableDispatch(t *testing.T) {
	q := stubHover{node: 1, pin: 10, link: -1}

	assert.True(t, NodeID(1).Hovered(q))
	assert.False(t, NodeID(2).Hovered(q))

	assert.True(t, PinID(10).Hovered(q))
	assert.True(t, InputPinID(10).Hovered(q))
	assert.True(t, OutputPinID(10).Hovered(q))
	assert.False(t, PinID(11).Hovered(q))

	assert.False(t, LinkID(100).Hovered(q))

	q.link = 100
	assert.True(t, LinkID(100).Hovered(q))
}
