// Package controller renders scenes, frame reports and call traces.
package controller

import (
	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
)

// UI is the output port of the CLI. Implementations render to plain text
// or to an interactive terminal.
type UI interface {
	// DisplayScene shows a summary of a scene's nodes and links.
	DisplayScene(scene *m.Scene) error
	// DisplayReports shows the frame reports of one replayed scene.
	DisplayReports(scene string, reports []m.FrameReport) error
	// DisplayTrace shows a backend call log in invocation order.
	DisplayTrace(calls []adapter.Call) error
}
