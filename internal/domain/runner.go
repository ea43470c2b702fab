// Package domain drives scenes through the editor protocol and collects
// the per-frame results.
package domain

import (
	"log/slog"
	"sync"

	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
	"github.com/vyorkin/patchbay/internal/scope"
)

// The editor keeps a single process-wide current context, so frames from
// concurrent replays must not overlap. Frames serialize on frameMu;
// scope.Enter re-binds the context at the start of every frame.
var frameMu sync.Mutex

// Runner draws a scene one frame at a time. Each frame is a full pass
// through the scope protocol: editor region, node regions with title bar,
// pins and static attributes, link declarations, then the outside-region
// queries summarized into a FrameReport.
type Runner interface {
	RunFrame(scene *m.Scene) m.FrameReport
}

type runner struct {
	backend adapter.Backend
	ctx     adapter.Context
	frame   int
}

// NewRunner creates a Runner over the given backend and editor context.
func NewRunner(backend adapter.Backend, ctx adapter.Context) Runner {
	return &runner{backend: backend, ctx: ctx}
}

func (r *runner) RunFrame(scene *m.Scene) m.FrameReport {
	frameMu.Lock()
	defer frameMu.Unlock()

	outside := scope.Enter(r.backend, r.ctx, func(ed scope.Editor) {
		for _, sn := range scene.Nodes {
			drawNode(ed, sn)
		}

		for _, link := range scene.Links {
			ed.AddLink(m.LinkID(link.ID), m.InputPinID(link.To), m.OutputPinID(link.From))
		}
	})

	r.frame++

	report := gatherReport(outside, r.frame)
	if report.Eventful() {
		slog.Debug("frame complete", "frame", r.frame, "scene", scene.Name)
	}

	return report
}

func drawNode(ed scope.Editor, sn m.SceneNode) {
	ed.Node(m.NodeID(sn.ID), func(node scope.Node) {
		if sn.Title != "" {
			node.TitleBar(func() {})
		}

		for _, pin := range sn.Inputs {
			shape := mustShape(pin.Shape)
			node.Input(m.InputPinID(pin.ID), shape, func() {})
		}

		for _, pin := range sn.Outputs {
			shape := mustShape(pin.Shape)
			node.Output(m.OutputPinID(pin.ID), shape, func() {})
		}

		for _, attr := range sn.Attributes {
			node.Attribute(m.AttributeID(attr.ID), func() {})
		}
	})
}

// mustShape parses a shape name already vetted by Scene.Validate.
func mustShape(name string) m.PinShape {
	shape, err := m.ParsePinShape(name)
	if err != nil {
		panic(err)
	}

	return shape
}

func gatherReport(outside scope.None, frame int) m.FrameReport {
	report := m.FrameReport{Frame: frame}

	if link, ok := outside.LinksCreated(); ok {
		report.Created = &link
	}

	if id, ok := outside.DroppedLink(); ok {
		report.Destroyed = &id
	}

	if id, ok := outside.HoveredPin(); ok {
		report.HoveredPin = &id
	}

	if id, ok := outside.HoveredLink(); ok {
		report.HoveredLink = &id
	}

	if id, ok := outside.ActiveAttribute(); ok {
		report.ActiveAttribute = &id
	}

	if id, ok := outside.LinkStartPin(); ok {
		report.DragFrom = &id
	}

	if id, ok := outside.LinkDropPin(true); ok {
		report.DropFrom = &id
	}

	// The selection getters treat an empty selection as a contract
	// violation, so they are gated on the counts.
	if outside.NumSelectedNodes() > 0 {
		report.SelectedNodes = outside.SelectedNodes()
	}

	if outside.NumSelectedLinks() > 0 {
		report.SelectedLinks = outside.SelectedLinks()
	}

	return report
}
