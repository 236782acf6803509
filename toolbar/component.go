package toolbar

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inkbar/predicate"
)

// ---------------------------------------------------------------------------
// bubbletea component
// ---------------------------------------------------------------------------
//
// Every cell write happens synchronously inside one Update turn; the only
// deferred work is the SVG export, which runs as a command while the
// export_busy cell disables its trigger. The flag is released on settlement
// regardless of outcome.

// StatePatchMsg carries a state push from the drawing engine back into the
// toolbar's cells.
type StatePatchMsg struct {
	Patch map[string]any
}

// ExportResultMsg is delivered to the host program when an SVG export
// settles.
type ExportResultMsg struct {
	SVG string
	Err error
}

// Component is the interactive toolbar surface. Bar items are traversed with
// left/right; an open popover captures up/down/enter for its sections.
type Component struct {
	tb   *Toolbar
	tree *Tree

	focus    int // index into tree.Bar
	panelSec int // focused section inside the open panel
	panelCtl int // focused control inside the focused section

	lastSlide time.Time // throttles slider-driven controller calls
	status    string
}

// NewComponent composes the toolbar tree for tb and wraps it in an
// interactive component.
func NewComponent(tb *Toolbar) (*Component, error) {
	tree, err := tb.Compose()
	if err != nil {
		return nil, err
	}
	c := &Component{tb: tb, tree: tree}
	c.focus = c.nextFocusable(-1, +1)
	return c, nil
}

// Toolbar returns the underlying state engine.
func (c *Component) Toolbar() *Toolbar { return c.tb }

// Tree returns the composed toolbar tree.
func (c *Component) Tree() *Tree { return c.tree }

// Status returns the last interaction error text, if any.
func (c *Component) Status() string { return c.status }

func (c *Component) Init() tea.Cmd { return nil }

func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.updateKey(msg)
	case StatePatchMsg:
		if err := c.tb.ApplyPatch(msg.Patch); err != nil {
			c.status = err.Error()
		}
		return c, nil
	case ExportResultMsg:
		// Unconditional release: the trigger re-enables on success and
		// on failure alike.
		_ = c.tb.mirror.Write(c.tb.exportBusy, false)
		if msg.Err != nil {
			c.status = msg.Err.Error()
		}
		return c, nil
	}
	return c, nil
}

func (c *Component) updateKey(msg tea.KeyMsg) (*Component, tea.Cmd) {
	c.status = ""
	if panel := c.openPanel(); panel != nil {
		return c.updatePanelKey(panel, msg)
	}

	switch msg.String() {
	case "left", "h":
		c.focus = c.nextFocusable(c.focus, -1)
	case "right", "l":
		c.focus = c.nextFocusable(c.focus, +1)
	case "enter", " ":
		c.activate(c.tree.Bar[c.focus])
	case "esc":
		_ = c.tb.CloseAllPopovers()
	case "e":
		return c, c.exportCmd()
	}
	return c, nil
}

// exportCmd runs the asynchronous export with its trigger held disabled for
// the duration.
func (c *Component) exportCmd() tea.Cmd {
	if c.tb.exportBusy.Bool() {
		return nil
	}
	if err := c.tb.mirror.Write(c.tb.exportBusy, true); err != nil {
		c.status = err.Error()
		return nil
	}
	ctrl := c.tb.ctrl
	return func() tea.Msg {
		svg, err := ctrl.ExportSVG(context.Background())
		return ExportResultMsg{SVG: svg, Err: err}
	}
}

func (c *Component) updatePanelKey(panel *Panel, msg tea.KeyMsg) (*Component, tea.Cmd) {
	secs := visibleSections(panel)
	if len(secs) == 0 {
		_ = c.tb.CloseAllPopovers()
		return c, nil
	}
	c.clampPanelFocus(secs)
	sec := secs[c.panelSec]
	ctl := sec.Controls[c.panelCtl]

	switch msg.String() {
	case "esc":
		_ = c.tb.CloseAllPopovers()
		c.panelSec, c.panelCtl = 0, 0
	case "up", "k":
		if c.panelSec > 0 {
			c.panelSec--
			c.panelCtl = 0
		}
	case "down", "j":
		if c.panelSec < len(secs)-1 {
			c.panelSec++
			c.panelCtl = 0
		}
	case "left", "h":
		if c.panelCtl > 0 {
			c.panelCtl--
		}
	case "right", "l":
		if c.panelCtl < len(sec.Controls)-1 {
			c.panelCtl++
		}
	case "enter", " ":
		if ctl.Kind != ControlSlider {
			c.do(ctl.Action)
		}
	case "+", "=":
		c.slide(ctl, +1)
	case "-", "_":
		c.slide(ctl, -1)
	}
	return c, nil
}

// slide nudges a slider control by one step, coalescing key repeat bursts to
// the configured throttle interval.
func (c *Component) slide(ctl Control, dir float64) {
	if ctl.Kind != ControlSlider || ctl.Bind == nil {
		return
	}
	if time.Since(c.lastSlide) < c.tb.cfg.Throttle {
		return
	}
	c.lastSlide = time.Now()

	v := ctl.Bind.Number() + dir*ctl.Step
	if v < ctl.Min {
		v = ctl.Min
	}
	if v > ctl.Max {
		v = ctl.Max
	}
	a := ctl.Action
	a.Value = v
	c.do(a)
}

func (c *Component) activate(it Item) {
	if it.Disabled != nil && predicate.EvalBool(it.Disabled) {
		return
	}
	c.do(it.Action)
}

func (c *Component) do(a Action) {
	if err := c.tb.Do(a); err != nil {
		c.status = err.Error()
	}
}

// openPanel returns the visible popover, if any. At most one popover is open
// because the toggle paths close the sibling.
func (c *Component) openPanel() *Panel {
	for _, p := range c.tree.Panels() {
		if p.Visible != nil && predicate.EvalBool(p.Visible) {
			return p
		}
	}
	return nil
}

func visibleSections(panel *Panel) []Section {
	var out []Section
	for _, sec := range panel.Sections {
		if sec.Visible == nil || predicate.EvalBool(sec.Visible) {
			out = append(out, sec)
		}
	}
	return out
}

func (c *Component) clampPanelFocus(secs []Section) {
	if c.panelSec >= len(secs) {
		c.panelSec = len(secs) - 1
	}
	if c.panelSec < 0 {
		c.panelSec = 0
	}
	if n := len(secs[c.panelSec].Controls); c.panelCtl >= n {
		c.panelCtl = n - 1
	}
	if c.panelCtl < 0 {
		c.panelCtl = 0
	}
}

// nextFocusable walks the bar from idx in dir, skipping dividers.
func (c *Component) nextFocusable(idx, dir int) int {
	n := len(c.tree.Bar)
	if n == 0 {
		return 0
	}
	i := idx
	for range c.tree.Bar {
		i += dir
		if i < 0 {
			i = n - 1
		}
		if i >= n {
			i = 0
		}
		if c.tree.Bar[i].Kind != ItemDivider {
			return i
		}
	}
	if idx < 0 {
		return 0
	}
	return idx
}
