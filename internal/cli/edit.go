package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/janwillms/graphboard/pkg/graph"
	gio "github.com/janwillms/graphboard/pkg/io"
)

// editCommand creates the edit command for the terminal graph editor.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [graph.json]",
		Short: "Edit a graph document interactively in the terminal",
		Long: `Edit opens a terminal editor for a graph document. Nodes get generated
ids; edges connect existing nodes with a direction mode and optional
label. Changes are kept in memory until saved with "s".

When the file does not exist yet, edit starts from an empty graph and
creates the file on save.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gio.DefaultFilename
			if len(args) == 1 {
				path = args[0]
			}
			return c.runEditor(path)
		},
	}

	return cmd
}

func (c *CLI) runEditor(path string) error {
	g, err := gio.ImportJSON(path)
	if errors.Is(err, fs.ErrNotExist) {
		g = graph.New()
	} else if err != nil {
		return err
	}

	model := newEditorModel(g, path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	m, ok := final.(editorModel)
	if !ok {
		return nil
	}
	if m.dirty {
		printWarning("exited with unsaved changes (%s not written)", path)
	} else {
		printSuccess("%s", path)
	}
	printStats(m.graph.NodeCount(), m.graph.EdgeCount())
	return nil
}

// =============================================================================
// editorModel - Interactive graph editing
// =============================================================================

// editorState names the editor's input mode.
type editorState int

const (
	stateBrowse editorState = iota
	stateAddNode
	stateRelabel
	statePickSource
	statePickTarget
	statePickDirection
	stateEdgeLabel
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	editorErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// editorModel is the bubbletea model for the graph editor.
type editorModel struct {
	graph *graph.Graph
	path  string

	state  editorState
	cursor int
	input  string

	edgeSource string
	edgeTarget string
	dirIndex   int

	status string
	failed bool // status holds an error message
	dirty  bool
}

// newEditorModel creates an editor over an existing graph.
func newEditorModel(g *graph.Graph, path string) editorModel {
	return editorModel{graph: g, path: path}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateBrowse:
		return m.updateBrowse(key)
	case stateAddNode, stateRelabel, stateEdgeLabel:
		return m.updateInput(key)
	case statePickSource, statePickTarget:
		return m.updatePick(key)
	case statePickDirection:
		return m.updateDirection(key)
	}
	return m, nil
}

func (m editorModel) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.failed = false

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.graph.NodeCount()-1 {
			m.cursor++
		}
	case "a":
		m.state = stateAddNode
		m.input = ""
	case "r":
		if n, ok := m.nodeUnderCursor(); ok {
			m.state = stateRelabel
			m.input = n.Label
		}
	case "d":
		if n, ok := m.nodeUnderCursor(); ok {
			m.graph.DeleteNode(n.ID)
			m.dirty = true
			if m.cursor >= m.graph.NodeCount() && m.cursor > 0 {
				m.cursor--
			}
			m.setStatus("deleted %s", n.ID)
		}
	case "c":
		if m.graph.NodeCount() < 2 {
			m.setError("need at least two nodes to add an edge")
			break
		}
		m.state = statePickSource
		m.cursor = 0
	case "x":
		m.graph.ClearEdges()
		m.dirty = true
		m.setStatus("cleared all edges")
	case "s":
		if err := gio.ExportJSON(m.graph, m.path); err != nil {
			m.setError("save failed: %v", err)
			break
		}
		m.dirty = false
		m.setStatus("saved %s", m.path)
	}
	return m, nil
}

func (m editorModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEscape:
		m.state = stateBrowse
		m.input = ""
	case tea.KeyEnter:
		return m.commitInput()
	case tea.KeyBackspace:
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m editorModel) commitInput() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateAddNode:
		n := m.graph.AddNode(m.input)
		m.dirty = true
		m.cursor = m.graph.NodeCount() - 1
		m.setStatus("added %s", n.ID)
	case stateRelabel:
		if n, ok := m.nodeUnderCursor(); ok {
			if err := m.graph.SetLabel(n.ID, m.input); err != nil {
				m.setError("%v", err)
			} else {
				m.dirty = true
				m.setStatus("relabeled %s", n.ID)
			}
		}
	case stateEdgeLabel:
		dir := graph.Directions()[m.dirIndex]
		if err := m.graph.AddEdge(m.edgeSource, m.edgeTarget, dir, m.input); err != nil {
			m.setError("%v", err)
		} else {
			m.dirty = true
			m.setStatus("added edge %s %s %s", m.edgeSource, iconArrow, m.edgeTarget)
		}
	}
	m.state = stateBrowse
	m.input = ""
	return m, nil
}

func (m editorModel) updatePick(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.state = stateBrowse
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.graph.NodeCount()-1 {
			m.cursor++
		}
	case "enter":
		n, ok := m.nodeUnderCursor()
		if !ok {
			m.state = stateBrowse
			break
		}
		if m.state == statePickSource {
			m.edgeSource = n.ID
			m.state = statePickTarget
		} else {
			if n.ID == m.edgeSource {
				m.setError("source and target must be different")
				break
			}
			m.edgeTarget = n.ID
			m.state = statePickDirection
			m.dirIndex = 0
		}
	}
	return m, nil
}

func (m editorModel) updateDirection(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	modes := graph.Directions()
	switch key.String() {
	case "esc":
		m.state = stateBrowse
	case "up", "k", "left", "h":
		m.dirIndex = (m.dirIndex + len(modes) - 1) % len(modes)
	case "down", "j", "right", "l":
		m.dirIndex = (m.dirIndex + 1) % len(modes)
	case "enter":
		m.state = stateEdgeLabel
		m.input = ""
	}
	return m, nil
}

func (m *editorModel) nodeUnderCursor() (graph.Node, bool) {
	nodes := m.graph.Nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return graph.Node{}, false
	}
	return nodes[m.cursor], true
}

func (m *editorModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *editorModel) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = true
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(m.helpLine()))
	b.WriteString("\n\n")

	m.viewNodes(&b)
	m.viewEdges(&b)
	m.viewPrompt(&b)

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(editorErrorStyle.Render(m.status))
		} else {
			b.WriteString(editorStatusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m editorModel) helpLine() string {
	switch m.state {
	case statePickSource:
		return "pick edge source  ↑/↓ move  ⏎ select  esc cancel"
	case statePickTarget:
		return "pick edge target  ↑/↓ move  ⏎ select  esc cancel"
	case statePickDirection:
		return "pick direction  ↑/↓ cycle  ⏎ select  esc cancel"
	case stateAddNode, stateRelabel, stateEdgeLabel:
		return "type label  ⏎ confirm  esc cancel"
	default:
		return "a add  r relabel  d delete  c connect  x clear edges  s save  q quit"
	}
}

func (m editorModel) viewNodes(b *strings.Builder) {
	b.WriteString(StyleHighlight.Render("Nodes"))
	b.WriteString("\n")

	nodes := m.graph.Nodes()
	if len(nodes) == 0 {
		b.WriteString(editorDimStyle.Render("  (none - press a to add one)"))
		b.WriteString("\n")
	}
	picking := m.state == statePickSource || m.state == statePickTarget
	for i, n := range nodes {
		cursor := "  "
		if i == m.cursor && (m.state == stateBrowse || picking || m.state == stateRelabel) {
			cursor = "▸ "
		}
		marker := ""
		if picking && n.ID == m.edgeSource {
			marker = " " + editorDimStyle.Render("(source)")
		}

		line := fmt.Sprintf("%s%-6s %s", cursor, n.ID, n.DisplayLabel())
		if i == m.cursor {
			b.WriteString(editorSelectedStyle.Render(line))
		} else {
			b.WriteString(editorNormalStyle.Render(line))
		}
		b.WriteString(marker)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m editorModel) viewEdges(b *strings.Builder) {
	b.WriteString(StyleHighlight.Render("Edges"))
	b.WriteString("\n")

	edges := m.graph.Edges()
	if len(edges) == 0 {
		b.WriteString(editorDimStyle.Render("  (none)"))
		b.WriteString("\n\n")
		return
	}
	for _, e := range edges {
		arrow := iconArrow
		switch e.Direction.Normalize() {
		case graph.Bidirected:
			arrow = "↔"
		case graph.Undirected:
			arrow = "—"
		}
		line := fmt.Sprintf("  %s %s %s", e.Source, arrow, e.Target)
		if e.Label != "" {
			line += editorDimStyle.Render("  (" + e.Label + ")")
		}
		b.WriteString(editorNormalStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m editorModel) viewPrompt(b *strings.Builder) {
	switch m.state {
	case stateAddNode:
		b.WriteString("New node label: " + StyleValue.Render(m.input) + "▏\n")
	case stateRelabel:
		b.WriteString("New label: " + StyleValue.Render(m.input) + "▏\n")
	case stateEdgeLabel:
		b.WriteString("Edge label (optional): " + StyleValue.Render(m.input) + "▏\n")
	case statePickDirection:
		b.WriteString("Direction:\n")
		for i, d := range graph.Directions() {
			cursor := "  "
			if i == m.dirIndex {
				cursor = "▸ "
			}
			line := cursor + string(d)
			if i == m.dirIndex {
				b.WriteString(editorSelectedStyle.Render(line))
			} else {
				b.WriteString(editorDimStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}
}
