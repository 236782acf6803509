// Package toolbar assembles the drawing toolbar: a reactive cell schema, the
// derived visibility predicates over it, a shared-namespace mirror, and a
// composer that turns configuration into a deterministic toolbar tree.
package toolbar

import (
	"fmt"

	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/schema"
	"github.com/jask/inkbar/shared"
)

// Toolbar owns one instance's state. All mutation goes through its methods;
// each method is one synchronous turn: cell writes commit, derived cells
// recompute, and the shared mirror publishes, in that order.
type Toolbar struct {
	cfg    Config
	ctrl   Controller
	reg    *schema.Registry
	mirror *shared.Mirror

	// cells
	tool         *schema.Cell
	isDrawing    *schema.Cell
	canUndo      *schema.Cell
	canRedo      *schema.Cell
	textEditing  *schema.Cell
	selectedIDs  *schema.Cell
	selIsLine    *schema.Cell
	selIsText    *schema.Cell
	activeLayer  *schema.Cell
	strokeToken  *schema.Cell
	fillToken    *schema.Cell
	strokeCSS    *schema.Cell
	fillCSS      *schema.Cell
	fillEnabled  *schema.Cell
	strokeWidth  *schema.Cell
	dashLength   *schema.Cell
	dashGap      *schema.Cell
	opacity      *schema.Cell
	fontFamily   *schema.Cell
	fontSize     *schema.Cell
	textAlign    *schema.Cell
	startArrow   *schema.Cell
	endArrow     *schema.Cell
	theme        *schema.Cell
	styleOpen    *schema.Cell
	colorOpen    *schema.Cell
	exportBusy   *schema.Cell
	seen         map[string]*schema.Cell

	// dash preset memory: last user-chosen magnitudes, used when the
	// preset re-activates. Defaults are 6 and 4.
	lastDashLen float64
	lastDotGap  float64

	preds contextPredicates
}

// Dash preset fallback magnitudes. The preset contract only requires the
// solid/dashed/dotted predicates to stay mutually exclusive; these pick the
// concrete values used when no slider adjustment has happened yet.
const (
	defaultDashLen = 6
	defaultDotGap  = 4
)

// New validates cfg, registers the full cell schema atomically, wires the
// shared mirror under the instance prefix, and seeds the namespace. Schema
// violations fail here, before the toolbar is observable anywhere.
func New(cfg Config, ns *shared.Namespace, ctrl Controller) (*Toolbar, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctrl == nil {
		ctrl = NopController{}
	}

	tb := &Toolbar{
		cfg:         cfg,
		ctrl:        ctrl,
		reg:         schema.NewRegistry(),
		seen:        make(map[string]*schema.Cell),
		lastDashLen: defaultDashLen,
		lastDotGap:  defaultDotGap,
	}
	if err := tb.registerCells(); err != nil {
		return nil, err
	}
	tb.reg.Seal()

	tb.mirror = shared.NewMirror(tb.reg, ns, cfg.Name)
	tb.mirror.SetDerive(tb.deriveColors)
	tb.preds = buildPredicates(tb)
	if err := tb.preds.check(tb.reg); err != nil {
		return nil, err
	}

	// Pre-seed the namespace so bindings and popover toggles never read
	// an absent key before the first interaction.
	tb.mirror.Publish(tb.reg.Cells()...)
	// Shared-scope cells (theme) follow their page-wide key afterwards.
	tb.mirror.Listen()

	if len(cfg.FontURLs) > 0 {
		ctrl.PrefetchFonts()
	}
	return tb, nil
}

func (tb *Toolbar) registerCells() error {
	reg := func(dst **schema.Cell, name string, kind schema.Kind, scope schema.Scope, initial any) error {
		c, err := tb.reg.Register(name, kind, scope, initial)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	}

	th := tb.cfg.Theme
	pal := tb.cfg.Palette
	steps := []func() error{
		func() error { return reg(&tb.tool, "tool", schema.String, schema.Local, tb.cfg.DefaultTool) },
		func() error { return reg(&tb.isDrawing, "is_drawing", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.canUndo, "can_undo", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.canRedo, "can_redo", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.textEditing, "text_editing", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.selectedIDs, "selected_ids", schema.String, schema.Local, "[]") },
		func() error { return reg(&tb.selIsLine, "selected_is_line", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.selIsText, "selected_is_text", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.activeLayer, "active_layer", schema.String, schema.Local, tb.cfg.DefaultLayer) },
		func() error {
			return reg(&tb.strokeToken, "stroke_token", schema.Number, schema.Local, float64(tb.cfg.DefaultStrokeToken.Index))
		},
		func() error {
			return reg(&tb.fillToken, "fill_token", schema.Number, schema.Local, float64(tb.cfg.DefaultFillToken.Index))
		},
		func() error {
			return reg(&tb.strokeCSS, "stroke_color_css", schema.String, schema.Local, pal.Resolve(tb.cfg.DefaultStrokeToken, th))
		},
		func() error {
			return reg(&tb.fillCSS, "fill_color_css", schema.String, schema.Local, pal.Resolve(tb.cfg.DefaultFillToken, th))
		},
		func() error { return reg(&tb.fillEnabled, "fill_enabled", schema.Bool, schema.Local, false) },
		func() error {
			return reg(&tb.strokeWidth, "stroke_width", schema.Number, schema.Local, tb.cfg.DefaultStrokeWidth)
		},
		func() error { return reg(&tb.dashLength, "dash_length", schema.Number, schema.Local, 0) },
		func() error { return reg(&tb.dashGap, "dash_gap", schema.Number, schema.Local, 0) },
		func() error { return reg(&tb.opacity, "opacity", schema.Number, schema.Local, tb.cfg.DefaultOpacity) },
		func() error { return reg(&tb.fontFamily, "font_family", schema.String, schema.Local, "hand-drawn") },
		func() error { return reg(&tb.fontSize, "font_size", schema.String, schema.Local, "medium") },
		func() error { return reg(&tb.textAlign, "text_align", schema.String, schema.Local, "left") },
		func() error { return reg(&tb.startArrow, "start_arrowhead", schema.String, schema.Local, "none") },
		func() error { return reg(&tb.endArrow, "end_arrowhead", schema.String, schema.Local, "none") },
		func() error { return reg(&tb.theme, "theme", schema.String, schema.Shared, th.String()) },
		func() error { return reg(&tb.styleOpen, "style_open", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.colorOpen, "color_open", schema.Bool, schema.Local, false) },
		func() error { return reg(&tb.exportBusy, "export_busy", schema.Bool, schema.Local, false) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	for _, id := range tb.cfg.RevealOnce {
		c, err := tb.reg.Register("seen_"+id, schema.Bool, schema.Local, false)
		if err != nil {
			return err
		}
		tb.seen[id] = c
	}
	return nil
}

// deriveColors keeps the resolved color cells consistent with the symbolic
// token cells and the theme, inside the same mirror patch as the triggering
// write. The fill side resolves even while fill is disabled so the native
// picker always displays a real hex.
func (tb *Toolbar) deriveColors(changed *schema.Cell) map[*schema.Cell]any {
	switch changed {
	case tb.theme, tb.strokeToken, tb.fillToken:
	default:
		return nil
	}
	th := tb.currentTheme()
	return map[*schema.Cell]any{
		tb.strokeCSS: tb.cfg.Palette.Resolve(palette.Token{Kind: palette.Stroke, Index: int(tb.strokeToken.Number())}, th),
		tb.fillCSS:   tb.cfg.Palette.Resolve(palette.Token{Kind: palette.Fill, Index: int(tb.fillToken.Number())}, th),
	}
}

func (tb *Toolbar) currentTheme() palette.Theme {
	th, err := palette.ParseTheme(tb.theme.Str())
	if err != nil {
		return palette.Light
	}
	return th
}

// Registry exposes the cell registry for predicate construction and tests.
func (tb *Toolbar) Registry() *schema.Registry { return tb.reg }

// Config returns the validated, normalized configuration.
func (tb *Toolbar) Config() Config { return tb.cfg }

// Predicates returns the derived context predicates.
func (tb *Toolbar) Predicates() contextPredicates { return tb.preds }

// Cell returns a registered cell by name.
func (tb *Toolbar) Cell(name string) (*schema.Cell, error) { return tb.reg.Lookup(name) }

// ---------------------------------------------------------------------------
// Interactions
// ---------------------------------------------------------------------------

// SwitchTool activates a tool. Both popovers close, except that the first
// activation of a reveal-once tool opens the style popover and any later
// activation of a reveal-once tool leaves the manual style toggle alone.
func (tb *Toolbar) SwitchTool(id string) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if !tb.cfg.hasTool(id) {
		return fmt.Errorf("%w: %q%s", ErrUnknownTool, id, suggestTool(id))
	}
	tb.ctrl.SwitchTool(id)
	if err := tb.mirror.Write(tb.tool, id); err != nil {
		return err
	}
	if err := tb.mirror.Write(tb.colorOpen, false); err != nil {
		return err
	}
	if tb.cfg.revealOnce(id) {
		if flag := tb.seen[id]; flag != nil && !flag.Bool() {
			if err := tb.mirror.Write(flag, true); err != nil {
				return err
			}
			return tb.mirror.Write(tb.styleOpen, true)
		}
		return nil
	}
	// Style popovers do not stick across unrelated tool changes.
	return tb.mirror.Write(tb.styleOpen, false)
}

// ToggleStylePopover flips the manual style toggle and closes the color one.
func (tb *Toolbar) ToggleStylePopover() error {
	if err := tb.mirror.Write(tb.colorOpen, false); err != nil {
		return err
	}
	return tb.mirror.Write(tb.styleOpen, !tb.styleOpen.Bool())
}

// ToggleColorPopover flips the color popover and closes the style one.
func (tb *Toolbar) ToggleColorPopover() error {
	if err := tb.mirror.Write(tb.styleOpen, false); err != nil {
		return err
	}
	return tb.mirror.Write(tb.colorOpen, !tb.colorOpen.Bool())
}

// CloseAllPopovers handles outside-click dismissal.
func (tb *Toolbar) CloseAllPopovers() error {
	if err := tb.mirror.Write(tb.styleOpen, false); err != nil {
		return err
	}
	return tb.mirror.Write(tb.colorOpen, false)
}

func (tb *Toolbar) Undo() {
	if tb.cfg.ReadOnly {
		return
	}
	tb.ctrl.Undo()
}

func (tb *Toolbar) Redo() {
	if tb.cfg.ReadOnly {
		return
	}
	tb.ctrl.Redo()
}

func (tb *Toolbar) Clear() {
	if tb.cfg.ReadOnly {
		return
	}
	tb.ctrl.Clear(tb.activeLayer.Str())
}

func (tb *Toolbar) DeleteSelected()    { tb.forward(tb.ctrl.DeleteSelected) }
func (tb *Toolbar) SelectAll()         { tb.ctrl.SelectAll() }
func (tb *Toolbar) DeselectAll()       { tb.ctrl.DeselectAll() }
func (tb *Toolbar) DuplicateSelected() { tb.forward(tb.ctrl.DuplicateSelected) }
func (tb *Toolbar) BringToFront()      { tb.forward(tb.ctrl.BringToFront) }
func (tb *Toolbar) SendToBack()        { tb.forward(tb.ctrl.SendToBack) }

func (tb *Toolbar) forward(call func()) {
	if tb.cfg.ReadOnly {
		return
	}
	call()
}

// ImportSVG forwards raw text unchecked; content validation belongs to the
// drawing engine.
func (tb *Toolbar) ImportSVG(text string) {
	if tb.cfg.ReadOnly {
		return
	}
	tb.ctrl.ImportSVG(text)
}

// SetStyleProperty writes a style cell and forwards the change. The cell
// write is the source of truth; the controller call is notification.
func (tb *Toolbar) SetStyleProperty(name string, value any) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	c, err := tb.reg.Lookup(name)
	if err != nil {
		return err
	}
	if err := tb.mirror.Write(c, value); err != nil {
		return err
	}
	tb.rememberDash(c)
	tb.ctrl.SetStyleProperty(name, value)
	return nil
}

// SetTextProperty is SetStyleProperty for the text-specific cells.
func (tb *Toolbar) SetTextProperty(name string, value any) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	c, err := tb.reg.Lookup(name)
	if err != nil {
		return err
	}
	if err := tb.mirror.Write(c, value); err != nil {
		return err
	}
	tb.ctrl.SetTextProperty(name, value)
	return nil
}

// rememberDash records user-chosen dash magnitudes so re-activating a preset
// restores them.
func (tb *Toolbar) rememberDash(c *schema.Cell) {
	switch c {
	case tb.dashLength:
		if v := tb.dashLength.Number(); v >= 1 {
			tb.lastDashLen = v
		}
	case tb.dashGap:
		if v := tb.dashGap.Number(); v > 0 && tb.dashLength.Number() < 1 {
			tb.lastDotGap = v
		}
	}
}

// SetDashPreset applies one of the three dash presets as a compound write.
// Exactly one of the solid/dashed/dotted predicates holds afterwards.
func (tb *Toolbar) SetDashPreset(name string) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	var length, gap float64
	switch name {
	case "solid":
		length, gap = 0, 0
	case "dashed":
		length, gap = tb.lastDashLen, 0
	case "dotted":
		length, gap = 0, tb.lastDotGap
	default:
		return fmt.Errorf("%w: dash preset %q", ErrBadConfig, name)
	}
	if err := tb.mirror.Write(tb.dashLength, length); err != nil {
		return err
	}
	if err := tb.mirror.Write(tb.dashGap, gap); err != nil {
		return err
	}
	tb.ctrl.SetDashPreset(name)
	return nil
}

// SetStrokeToken selects a preset stroke swatch symbolically, so a later
// theme switch keeps the same swatch highlighted.
func (tb *Toolbar) SetStrokeToken(index int) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if err := tb.mirror.Write(tb.strokeToken, float64(index)); err != nil {
		return err
	}
	// Re-selecting the already-active swatch after a custom color write is a
	// no-op token write, so the derive hook never runs; snap the resolved
	// cell back to the swatch explicitly.
	hex := tb.cfg.Palette.Resolve(palette.Token{Kind: palette.Stroke, Index: index}, tb.currentTheme())
	if err := tb.mirror.Write(tb.strokeCSS, hex); err != nil {
		return err
	}
	tb.ctrl.SetStyleProperty("stroke_color", hex)
	return nil
}

// SetFillToken selects a preset fill swatch and enables fill.
func (tb *Toolbar) SetFillToken(index int) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if err := tb.mirror.Write(tb.fillToken, float64(index)); err != nil {
		return err
	}
	hex := tb.cfg.Palette.Resolve(palette.Token{Kind: palette.Fill, Index: index}, tb.currentTheme())
	if err := tb.mirror.Write(tb.fillCSS, hex); err != nil {
		return err
	}
	if err := tb.mirror.Write(tb.fillEnabled, true); err != nil {
		return err
	}
	tb.ctrl.SetStyleProperty("fill_color", hex)
	tb.ctrl.SetStyleProperty("fill_enabled", true)
	return nil
}

// DisableFill selects the "no fill" swatch.
func (tb *Toolbar) DisableFill() error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if err := tb.mirror.Write(tb.fillEnabled, false); err != nil {
		return err
	}
	tb.ctrl.SetStyleProperty("fill_enabled", false)
	return nil
}

// SetCustomStrokeColor takes a raw hex from the native picker. It binds to
// the resolved cell; the symbolic token keeps its last preset value.
func (tb *Toolbar) SetCustomStrokeColor(hex string) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if err := tb.mirror.Write(tb.strokeCSS, hex); err != nil {
		return err
	}
	tb.ctrl.SetStyleProperty("stroke_color", hex)
	return nil
}

// SetCustomFillColor takes a raw hex from the native picker and enables fill.
func (tb *Toolbar) SetCustomFillColor(hex string) error {
	if tb.cfg.ReadOnly {
		return nil
	}
	if err := tb.mirror.Write(tb.fillCSS, hex); err != nil {
		return err
	}
	if err := tb.mirror.Write(tb.fillEnabled, true); err != nil {
		return err
	}
	tb.ctrl.SetStyleProperty("fill_color", hex)
	tb.ctrl.SetStyleProperty("fill_enabled", true)
	return nil
}

// SetTheme switches the theme. The symbolic token cells never change here;
// only the resolved color cells move, atomically with the theme cell.
func (tb *Toolbar) SetTheme(name string) error {
	th, err := palette.ParseTheme(name)
	if err != nil {
		return err
	}
	if err := tb.mirror.Write(tb.theme, th.String()); err != nil {
		return err
	}
	tb.ctrl.SetTheme(th.String())
	return nil
}

// ApplyPatch applies a state push from the drawing engine. Keys match cell
// names; unknown keys are ignored, not fatal. Writes flow through the mirror
// so derived cells and the shared namespace stay consistent.
func (tb *Toolbar) ApplyPatch(patch map[string]any) error {
	for key, value := range patch {
		c, err := tb.reg.Lookup(key)
		if err != nil {
			continue
		}
		if err := tb.mirror.Write(c, value); err != nil {
			return fmt.Errorf("apply patch %q: %w", key, err)
		}
	}
	return nil
}
