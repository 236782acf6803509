package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/inkbar/internal/prefs"
	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/shared"
	"github.com/jask/inkbar/toolbar"
	"github.com/jask/inkbar/widgets"
)

// sketchpad is a minimal drawing engine standing in behind the toolbar. It
// records strokes as an undo/redo log and persists style choices through the
// preference store.
type sketchpad struct {
	toolbar.NopController

	tool    string
	strokes []string
	redo    []string
	store   *prefs.Store
	width   int
	height  int
}

func newSketchpad(store *prefs.Store, w, h int) *sketchpad {
	return &sketchpad{tool: "pen", store: store, width: w, height: h}
}

func (s *sketchpad) SwitchTool(id string) { s.tool = id }

func (s *sketchpad) stroke() {
	s.strokes = append(s.strokes, s.tool)
	s.redo = nil
}

func (s *sketchpad) Undo() {
	if n := len(s.strokes); n > 0 {
		s.redo = append(s.redo, s.strokes[n-1])
		s.strokes = s.strokes[:n-1]
	}
}

func (s *sketchpad) Redo() {
	if n := len(s.redo); n > 0 {
		s.strokes = append(s.strokes, s.redo[n-1])
		s.redo = s.redo[:n-1]
	}
}

func (s *sketchpad) Clear(string) {
	s.strokes = nil
	s.redo = nil
}

func (s *sketchpad) SetStyleProperty(name string, value any) { s.persist(name, value) }
func (s *sketchpad) SetTextProperty(name string, value any)  { s.persist(name, value) }
func (s *sketchpad) SetTheme(name string)                    { s.persist("theme", name) }

func (s *sketchpad) persist(name string, value any) {
	if s.store == nil {
		return
	}
	switch v := value.(type) {
	case string:
		_ = s.store.Set(name, v)
	case float64:
		_ = s.store.SetNumber(name, v)
	case bool:
		_ = s.store.Set(name, strconv.FormatBool(v))
	}
}

func (s *sketchpad) ExportSVG(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, s.width, s.height)
	for i, tool := range s.strokes {
		fmt.Fprintf(&b, `<g data-tool=%q data-seq="%d"/>`, tool, i)
	}
	b.WriteString(`</svg>`)
	return b.String(), nil
}

// patch reports the engine-owned cells back to the toolbar.
func (s *sketchpad) patch() map[string]any {
	return map[string]any{
		"can_undo": len(s.strokes) > 0,
		"can_redo": len(s.redo) > 0,
	}
}

// ---------------------------------------------------------------------------
// Demo model
// ---------------------------------------------------------------------------

var (
	canvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

type demoModel struct {
	bar    *toolbar.Component
	tb     *toolbar.Toolbar
	pad    *sketchpad
	ns     *shared.Namespace
	width  int
	height int
	svg    string
}

func newDemoModel(bar *toolbar.Component, pad *sketchpad, ns *shared.Namespace) demoModel {
	return demoModel{bar: bar, tb: bar.Toolbar(), pad: pad, ns: ns, width: 80, height: 24}
}

func (m demoModel) Init() tea.Cmd { return m.bar.Init() }

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "d":
			// Simulate a stroke with the active tool.
			m.pad.stroke()
			m.bar, _ = m.bar.Update(toolbar.StatePatchMsg{Patch: m.pad.patch()})
			return m, nil
		case "T":
			next := "dark"
			if themeIs(m.tb, palette.Dark) {
				next = "light"
			}
			_ = m.tb.SetTheme(next)
			return m, nil
		}
	case toolbar.ExportResultMsg:
		if msg.Err == nil {
			m.svg = msg.SVG
		}
	}

	var cmd tea.Cmd
	m.bar, cmd = m.bar.Update(msg)
	// Undo/redo availability can change after any bar interaction.
	m.bar, _ = m.bar.Update(toolbar.StatePatchMsg{Patch: m.pad.patch()})
	return m, cmd
}

func themeIs(tb *toolbar.Toolbar, th palette.Theme) bool {
	c, err := tb.Cell("theme")
	return err == nil && c.Str() == th.String()
}

func (m demoModel) View() string {
	canvas := m.viewCanvas()
	bar := m.bar.View()
	x := widgets.CenterX(m.width, lipgloss.Width(bar))
	out := widgets.Overlay(canvas, bar, x, 1)

	help := helpStyle.Render(fmt.Sprintf(
		"←/→ focus · enter activate · d draw · e export · T theme · q quit · %d keys synced", m.ns.Len()))
	return out + "\n" + help
}

func (m demoModel) viewCanvas() string {
	h := m.height - 3
	if h < 8 {
		h = 8
	}
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat("·", max(m.width, 10))
	}
	if n := len(m.pad.strokes); n > 0 && h > 6 {
		lines[h-2] = widgets.Truncate(fmt.Sprintf("strokes: %d (last: %s)", n, m.pad.strokes[n-1]), m.width)
	}
	if m.svg != "" && h > 7 {
		lines[h-1] = widgets.Truncate("export: "+m.svg, m.width)
	}
	return canvasStyle.Render(strings.Join(lines, "\n"))
}
