package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
)

// SimpleUI implements UI using cobra Command's output and tablewriter.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayScene implements UI.
func (s *SimpleUI) DisplayScene(scene *m.Scene) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Node", "Title", "Inputs", "Outputs", "Attributes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, node := range scene.Nodes {
		table.Append([]string{
			fmt.Sprintf("%d", node.ID),
			node.Title,
			formatPins(node.Inputs),
			formatPins(node.Outputs),
			formatAttrs(node.Attributes),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d nodes", len(scene.Nodes)), scene.Name, "", "",
		fmt.Sprintf("%d links", len(scene.Links)),
	})
	table.Render()

	s.printf("\n%s", buf.String())

	for _, link := range scene.Links {
		s.printf("  link %d: %d -> %d\n", link.ID, link.From, link.To)
	}

	return nil
}

func formatPins(pins []m.ScenePin) string {
	parts := make([]string, 0, len(pins))
	for _, pin := range pins {
		if pin.Label != "" {
			parts = append(parts, fmt.Sprintf("%d (%s)", pin.ID, pin.Label))
			continue
		}

		parts = append(parts, fmt.Sprintf("%d", pin.ID))
	}

	return strings.Join(parts, ", ")
}

func formatAttrs(attrs []m.SceneAttribute) string {
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%d", attr.ID))
	}

	return strings.Join(parts, ", ")
}

// DisplayReports implements UI.
func (s *SimpleUI) DisplayReports(scene string, reports []m.FrameReport) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Frame", "Events", "Selection"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	eventful := 0

	for _, report := range reports {
		events := formatEvents(report)
		if events != "" {
			eventful++
		}

		table.Append([]string{
			fmt.Sprintf("%d", report.Frame),
			events,
			formatSelection(report),
		})
	}

	table.SetFooter([]string{scene, fmt.Sprintf("%d eventful", eventful), fmt.Sprintf("%d frames", len(reports))})
	table.Render()

	s.printf("\n%s", buf.String())

	return nil
}

func formatEvents(report m.FrameReport) string {
	var parts []string

	if link := report.Created; link != nil {
		parts = append(parts, fmt.Sprintf("created %d:%d -> %d:%d", link.StartNode, link.StartPin, link.EndNode, link.EndPin))
	}

	if report.Destroyed != nil {
		parts = append(parts, fmt.Sprintf("destroyed link %d", *report.Destroyed))
	}

	if report.HoveredPin != nil {
		parts = append(parts, fmt.Sprintf("hover pin %d", *report.HoveredPin))
	}

	if report.HoveredLink != nil {
		parts = append(parts, fmt.Sprintf("hover link %d", *report.HoveredLink))
	}

	if report.ActiveAttribute != nil {
		parts = append(parts, fmt.Sprintf("active attr %d", *report.ActiveAttribute))
	}

	if report.DragFrom != nil {
		parts = append(parts, fmt.Sprintf("dragging from pin %d", *report.DragFrom))
	}

	if report.DropFrom != nil {
		parts = append(parts, fmt.Sprintf("dropped from pin %d", *report.DropFrom))
	}

	return strings.Join(parts, "; ")
}

func formatSelection(report m.FrameReport) string {
	var parts []string

	if len(report.SelectedNodes) > 0 {
		nodes := make([]string, len(report.SelectedNodes))
		for i, id := range report.SelectedNodes {
			nodes[i] = fmt.Sprintf("%d", id)
		}

		parts = append(parts, "nodes "+strings.Join(nodes, ","))
	}

	if len(report.SelectedLinks) > 0 {
		links := make([]string, len(report.SelectedLinks))
		for i, id := range report.SelectedLinks {
			links[i] = fmt.Sprintf("%d", id)
		}

		parts = append(parts, "links "+strings.Join(links, ","))
	}

	return strings.Join(parts, " ")
}

// DisplayTrace implements UI.
func (s *SimpleUI) DisplayTrace(calls []adapter.Call) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Depth", "Call"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	depth := 0

	for i, call := range calls {
		if strings.HasPrefix(call.Op, "End") {
			depth--
		}

		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", depth),
			strings.Repeat("  ", depth) + call.String(),
		})

		if strings.HasPrefix(call.Op, "Begin") {
			depth++
		}
	}

	table.SetFooter([]string{"", "", fmt.Sprintf("%d calls", len(calls))})
	table.Render()

	s.printf("\n%s", buf.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
