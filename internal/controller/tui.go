package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vyorkin/patchbay/internal/adapter"
	"github.com/vyorkin/patchbay/internal/domain"
	m "github.com/vyorkin/patchbay/internal/model"
)

var (
	nodeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginRight(1)

	hoveredNodeStyle = nodeStyle.
				BorderForeground(lipgloss.Color("212"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	selectedTitleStyle = titleStyle.
				Foreground(lipgloss.Color("212"))

	hoveredPinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dragPinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	statusStyle = lipgloss.NewStyle().
			Faint(true).
			MarginTop(1)
)

type keyMap struct {
	NextNode key.Binding
	PrevNode key.Binding
	NextPin  key.Binding
	PrevPin  key.Binding
	Select   key.Binding
	Drag     key.Binding
	Connect  key.Binding
	Drop     key.Binding
	Cut      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextNode: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "next node")),
		PrevNode: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "prev node")),
		NextPin:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l", "next pin")),
		PrevPin:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h", "prev pin")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select node")),
		Drag:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag from pin")),
		Connect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect to pin")),
		Drop:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "drop drag")),
		Cut:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut link at pin")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextNode, k.NextPin, k.Select, k.Drag, k.Connect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextNode, k.PrevNode, k.NextPin, k.PrevPin},
		{k.Select, k.Drag, k.Connect, k.Drop, k.Cut},
		{k.Help, k.Quit},
	}
}

// tuiModel is the interactive editor. Every keypress is translated into
// simulated pointer input, then the scene is redrawn through the scope
// protocol, so what is on screen is always the product of a legal
// begin/end sequence.
type tuiModel struct {
	scene  *m.Scene
	sim    *adapter.Sim
	runner domain.Runner
	report m.FrameReport

	node int // cursor into scene.Nodes
	pin  int // -1 hovers the node; otherwise index into its pins

	selected map[int32]bool

	keys keyMap
	help help.Model
}

func newTUIModel(scene *m.Scene) tuiModel {
	sim := adapter.NewSim()

	model := tuiModel{
		scene:    scene,
		sim:      sim,
		runner:   domain.NewRunner(sim, sim.Context()),
		pin:      -1,
		selected: make(map[int32]bool),
		keys:     newKeyMap(),
		help:     help.New(),
	}

	// First frame declares the scene so interaction has targets.
	model.report = model.runner.RunFrame(scene)

	return model
}

// Init implements tea.Model.
func (t tuiModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (t tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.help.Width = msg.Width
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, t.keys.Quit):
			return t, tea.Quit

		case key.Matches(msg, t.keys.Help):
			t.help.ShowAll = !t.help.ShowAll
			return t, nil

		case key.Matches(msg, t.keys.NextNode):
			t.moveNode(1)

		case key.Matches(msg, t.keys.PrevNode):
			t.moveNode(-1)

		case key.Matches(msg, t.keys.NextPin):
			t.movePin(1)

		case key.Matches(msg, t.keys.PrevPin):
			t.movePin(-1)

		case key.Matches(msg, t.keys.Select):
			t.toggleSelect()

		case key.Matches(msg, t.keys.Drag):
			if pin, ok := t.hoveredPin(); ok {
				t.sim.StartDrag(pin)
			}

		case key.Matches(msg, t.keys.Connect):
			t.connect()

		case key.Matches(msg, t.keys.Drop):
			t.sim.DropDrag(false)

		case key.Matches(msg, t.keys.Cut):
			t.cutLink()

		default:
			return t, nil
		}

		t.report = t.runner.RunFrame(t.scene)

		return t, nil
	}

	return t, nil
}

func (t *tuiModel) moveNode(delta int) {
	if len(t.scene.Nodes) == 0 {
		return
	}

	t.node = (t.node + delta + len(t.scene.Nodes)) % len(t.scene.Nodes)
	t.pin = -1
	t.sim.HoverNode(t.scene.Nodes[t.node].ID)
}

func (t *tuiModel) movePin(delta int) {
	pins := t.nodePins()
	if len(pins) == 0 {
		return
	}

	// Slot 0 hovers the node itself; slots 1..len hover its pins.
	slot := (t.pin + 1 + delta + len(pins) + 1) % (len(pins) + 1)
	t.pin = slot - 1

	if t.pin < 0 {
		t.sim.HoverNode(t.scene.Nodes[t.node].ID)
		return
	}

	t.sim.HoverPin(pins[t.pin].ID)
}

// nodePins returns the cursor node's pins, inputs first.
func (t *tuiModel) nodePins() []m.ScenePin {
	if t.node >= len(t.scene.Nodes) {
		return nil
	}

	node := t.scene.Nodes[t.node]

	return append(append([]m.ScenePin(nil), node.Inputs...), node.Outputs...)
}

func (t *tuiModel) hoveredPin() (int32, bool) {
	if t.pin < 0 {
		return 0, false
	}

	pins := t.nodePins()
	if t.pin >= len(pins) {
		return 0, false
	}

	return pins[t.pin].ID, true
}

func (t *tuiModel) toggleSelect() {
	if t.node >= len(t.scene.Nodes) {
		return
	}

	id := t.scene.Nodes[t.node].ID
	t.selected[id] = !t.selected[id]

	ids := make([]int32, 0, len(t.selected))
	for node, on := range t.selected {
		if on {
			ids = append(ids, node)
		}
	}

	t.sim.SelectNodes(ids...)
}

// connect completes the in-progress drag onto the hovered pin, orienting
// the pair output-to-input regardless of which end the drag started at.
func (t *tuiModel) connect() {
	origin, ok := t.sim.LinkStarted()
	if !ok {
		return
	}

	target, ok := t.hoveredPin()
	if !ok || target == origin {
		return
	}

	from, to := origin, target
	if t.sim.IsInputPin(origin) {
		from, to = target, origin
	}

	t.sim.CompleteDrag(from, to, false)
}

// cutLink destroys the declared link attached to the hovered input pin.
func (t *tuiModel) cutLink() {
	pin, ok := t.hoveredPin()
	if !ok {
		return
	}

	for _, link := range t.sim.DeclaredLinks() {
		if link.Input == pin || link.Output == pin {
			t.sim.DestroyLink(link.ID)
			return
		}
	}
}

// View implements tea.Model.
func (t tuiModel) View() string {
	var b strings.Builder

	boxes := make([]string, 0, len(t.scene.Nodes))
	for i, node := range t.scene.Nodes {
		boxes = append(boxes, t.renderNode(i, node))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	for _, link := range t.sim.DeclaredLinks() {
		fmt.Fprintf(&b, "  link %d: pin %d -> pin %d\n", link.ID, link.Output, link.Input)
	}

	status := formatEvents(t.report)
	if status == "" {
		status = "idle"
	}

	b.WriteString(statusStyle.Render("frame "+fmt.Sprintf("%d", t.report.Frame)+": "+status) + "\n")
	b.WriteString(t.help.View(t.keys))

	return b.String()
}

func (t tuiModel) renderNode(index int, node m.SceneNode) string {
	var lines []string

	title := titleStyle
	if t.selected[node.ID] {
		title = selectedTitleStyle
	}

	lines = append(lines, title.Render(node.Title))

	pinIndex := 0

	for _, pin := range node.Inputs {
		lines = append(lines, t.renderPin(index, pinIndex, pin, true))
		pinIndex++
	}

	for _, pin := range node.Outputs {
		lines = append(lines, t.renderPin(index, pinIndex, pin, false))
		pinIndex++
	}

	for _, attr := range node.Attributes {
		lines = append(lines, "· "+attr.Label)
	}

	box := nodeStyle
	if index == t.node {
		box = hoveredNodeStyle
	}

	return box.Render(strings.Join(lines, "\n"))
}

func (t tuiModel) renderPin(nodeIndex, pinIndex int, pin m.ScenePin, input bool) string {
	glyph := pinGlyph(pin.Shape)

	label := pin.Label
	if label == "" {
		label = fmt.Sprintf("pin %d", pin.ID)
	}

	line := glyph + " " + label
	if !input {
		line = label + " " + glyph
	}

	if origin, ok := t.sim.LinkStarted(); ok && origin == pin.ID {
		return dragPinStyle.Render(line)
	}

	if nodeIndex == t.node && pinIndex == t.pin {
		return hoveredPinStyle.Render(line)
	}

	return line
}

func pinGlyph(shape string) string {
	parsed, err := m.ParsePinShape(shape)
	if err != nil {
		return "●"
	}

	switch parsed {
	case m.ShapeCircle:
		return "○"
	case m.ShapeCircleFilled:
		return "●"
	case m.ShapeTriangle:
		return "▷"
	case m.ShapeTriangleFilled:
		return "▶"
	case m.ShapeQuad:
		return "□"
	case m.ShapeQuadFilled:
		return "■"
	}

	return "●"
}

// RunTUI runs the interactive editor over the given scene until the user
// quits.
func RunTUI(scene *m.Scene) error {
	program := tea.NewProgram(newTUIModel(scene), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}
