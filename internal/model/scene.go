package model

import "fmt"

// Scene is the declarative description of a patch: the nodes, pins and
// persistent links to declare every frame. Scenes are authored as YAML
// documents and replayed through the editor protocol by the frame runner.
type Scene struct {
	Name  string      `yaml:"name"`
	Nodes []SceneNode `yaml:"nodes"`
	Links []SceneLink `yaml:"links,omitempty"`
}

// SceneNode describes one node of a scene.
type SceneNode struct {
	ID         int32            `yaml:"id"`
	Title      string           `yaml:"title"`
	Inputs     []ScenePin       `yaml:"inputs,omitempty"`
	Outputs    []ScenePin       `yaml:"outputs,omitempty"`
	Attributes []SceneAttribute `yaml:"attributes,omitempty"`
}

// ScenePin describes a connectable pin of a scene node. Shape names follow
// ParsePinShape; an empty shape means the default glyph.
type ScenePin struct {
	ID    int32  `yaml:"id"`
	Label string `yaml:"label,omitempty"`
	Shape string `yaml:"shape,omitempty"`
}

// SceneAttribute describes a static, non-connectable attribute.
type SceneAttribute struct {
	ID    int32  `yaml:"id"`
	Label string `yaml:"label,omitempty"`
}

// SceneLink declares a persistent link from an output pin to an input pin.
type SceneLink struct {
	ID   int32 `yaml:"id"`
	From int32 `yaml:"from"` // output pin
	To   int32 `yaml:"to"`   // input pin
}

// Validate checks internal consistency of the scene: node IDs are unique,
// pin and attribute IDs are unique across the whole scene, link endpoints
// reference declared pins of the right direction, and shapes parse.
func (s *Scene) Validate() error {
	nodes := make(map[int32]bool, len(s.Nodes))
	inputs := make(map[int32]bool)
	outputs := make(map[int32]bool)
	attrs := make(map[int32]bool)

	for _, node := range s.Nodes {
		if nodes[node.ID] {
			return fmt.Errorf("duplicate node id %d", node.ID)
		}

		nodes[node.ID] = true

		for _, pin := range node.Inputs {
			if err := checkPin(pin, inputs, outputs, attrs); err != nil {
				return fmt.Errorf("node %d: %w", node.ID, err)
			}

			inputs[pin.ID] = true
		}

		for _, pin := range node.Outputs {
			if err := checkPin(pin, inputs, outputs, attrs); err != nil {
				return fmt.Errorf("node %d: %w", node.ID, err)
			}

			outputs[pin.ID] = true
		}

		for _, attr := range node.Attributes {
			if inputs[attr.ID] || outputs[attr.ID] || attrs[attr.ID] {
				return fmt.Errorf("node %d: duplicate attribute id %d", node.ID, attr.ID)
			}

			attrs[attr.ID] = true
		}
	}

	links := make(map[int32]bool, len(s.Links))

	for _, link := range s.Links {
		if links[link.ID] {
			return fmt.Errorf("duplicate link id %d", link.ID)
		}

		links[link.ID] = true

		if !outputs[link.From] {
			return fmt.Errorf("link %d: %d is not a declared output pin", link.ID, link.From)
		}

		if !inputs[link.To] {
			return fmt.Errorf("link %d: %d is not a declared input pin", link.ID, link.To)
		}
	}

	return nil
}

func checkPin(pin ScenePin, inputs, outputs, attrs map[int32]bool) error {
	if inputs[pin.ID] || outputs[pin.ID] || attrs[pin.ID] {
		return fmt.Errorf("duplicate pin id %d", pin.ID)
	}

	if _, err := ParsePinShape(pin.Shape); err != nil {
		return fmt.Errorf("pin %d: %w", pin.ID, err)
	}

	return nil
}

// FrameScript is an ordered list of per-frame interaction batches. The
// events of frame i are injected into the backend before frame i is drawn,
// so its queries observe them the way a real pointer would produce them.
type FrameScript struct {
	Name   string        `yaml:"name"`
	Frames []FrameEvents `yaml:"frames"`
}

// FrameEvents is one batch of simulated interactions. Every field is
// optional; zero batches are legal and simply draw an idle frame.
type FrameEvents struct {
	HoverNode *int32 `yaml:"hover_node,omitempty"`
	HoverPin  *int32 `yaml:"hover_pin,omitempty"`
	HoverLink *int32 `yaml:"hover_link,omitempty"`

	SelectNodes []int32 `yaml:"select_nodes,omitempty"`
	SelectLinks []int32 `yaml:"select_links,omitempty"`

	// StartDrag begins a drag from the given pin; DropDrag abandons it
	// (true marks the drag as detached from an existing link). Connect
	// completes a drag into a new connection.
	StartDrag *int32        `yaml:"start_drag,omitempty"`
	DropDrag  *bool         `yaml:"drop_drag,omitempty"`
	Connect   *ConnectEvent `yaml:"connect,omitempty"`

	DestroyLink *int32 `yaml:"destroy_link,omitempty"`
	Activate    *int32 `yaml:"activate,omitempty"`
}

// ConnectEvent completes a drag from an output pin onto an input pin.
type ConnectEvent struct {
	From int32 `yaml:"from"`
	To   int32 `yaml:"to"`
	Snap bool  `yaml:"snap,omitempty"`
}
