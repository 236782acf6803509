package toolbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/predicate"
)

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

var (
	barStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(0, 1)

	itemStyle     = lipgloss.NewStyle().Padding(0, 1)
	itemFocused   = itemStyle.Foreground(lipgloss.Color("#cdd6f4")).Bold(true).Underline(true)
	itemSelected  = itemStyle.Background(lipgloss.Color("#89b4fa")).Foreground(lipgloss.Color("#1e1e2e"))
	itemDisabled  = itemStyle.Foreground(lipgloss.Color("#585b70"))
	itemDanger    = itemStyle.Foreground(lipgloss.Color("#f38ba8"))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a")).SetString("│")
	sectionLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Bold(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#585b70")).Padding(0, 1)
	ctlStyle      = lipgloss.NewStyle().Padding(0, 1)
	ctlSelected   = ctlStyle.Reverse(true)
	ctlFocused    = ctlStyle.Bold(true).Underline(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	sliderTrack   = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	swatchCells   = "██"
	noFillGlyph   = "⊘"
	colorTriGlyph = "◉"
)

// View renders the bar and, when a popover is open, its panel beneath.
func (c *Component) View() string {
	var b strings.Builder
	b.WriteString(barStyle.Render(c.viewBar()))

	if panel := c.openPanel(); panel != nil {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(c.viewPanel(panel)))
	}
	if c.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(c.status))
	}
	return b.String()
}

func (c *Component) viewBar() string {
	parts := make([]string, 0, len(c.tree.Bar))
	for i, it := range c.tree.Bar {
		parts = append(parts, c.viewItem(it, i == c.focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (c *Component) viewItem(it Item, focused bool) string {
	if it.Kind == ItemDivider {
		return dividerStyle.String()
	}

	glyph := it.Icon
	if it.Kind == ItemColorTrigger {
		glyph = lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.tb.strokeCSS.Str())).
			Render(colorTriGlyph)
	}

	style := itemStyle
	switch {
	case it.Selected != nil && predicate.EvalBool(it.Selected):
		style = itemSelected
	case it.Disabled != nil && predicate.EvalBool(it.Disabled):
		style = itemDisabled
	case it.Danger:
		style = itemDanger
	}
	if focused {
		// Focus marker composes over the state style so a selected tool
		// still shows where the cursor is.
		return itemFocused.Render(style.Inline(true).Render(glyph))
	}
	return style.Render(glyph)
}

func (c *Component) viewPanel(panel *Panel) string {
	secs := visibleSections(panel)
	rows := make([]string, 0, len(secs))
	for si, sec := range secs {
		row := []string{sectionLabel.Render(sec.Label)}
		for ci, ctl := range sec.Controls {
			focused := si == c.panelSec && ci == c.panelCtl
			row = append(row, c.viewControl(ctl, focused))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, row...))
	}
	return strings.Join(rows, "\n")
}

func (c *Component) viewControl(ctl Control, focused bool) string {
	style := ctlStyle
	if ctl.Selected != nil && predicate.EvalBool(ctl.Selected) {
		style = ctlSelected
	}
	if focused {
		style = style.Inherit(ctlFocused)
	}

	switch ctl.Kind {
	case ControlSwatch:
		hex := c.tb.cfg.Palette.Resolve(swatchToken(ctl), c.tb.currentTheme())
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(swatchCells))
	case ControlHexSwatch:
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color(ctl.Hex)).Render(swatchCells))
	case ControlNoFill:
		return style.Render(noFillGlyph)
	case ControlColorInput:
		return style.Render(ctl.Bind.Str())
	case ControlSlider:
		return style.Render(viewSlider(ctl))
	}
	return style.Render(ctl.Label)
}

// swatchToken maps a swatch control back to its palette token.
func swatchToken(ctl Control) palette.Token {
	kind := palette.Stroke
	if ctl.Action.Op == OpSetFillToken {
		kind = palette.Fill
	}
	return palette.Token{Kind: kind, Index: ctl.Index}
}

// viewSlider draws a ten-segment track with the thumb at the bound value.
func viewSlider(ctl Control) string {
	const segments = 10
	v := ctl.Bind.Number()
	pos := 0
	if ctl.Max > ctl.Min {
		pos = int((v - ctl.Min) / (ctl.Max - ctl.Min) * (segments - 1))
	}
	if pos < 0 {
		pos = 0
	}
	if pos > segments-1 {
		pos = segments - 1
	}
	track := strings.Repeat("─", pos) + "●" + strings.Repeat("─", segments-1-pos)
	return fmt.Sprintf("%s %g", sliderTrack.Render(track), v)
}
