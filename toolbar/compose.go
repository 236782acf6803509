package toolbar

import (
	"fmt"

	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/predicate"
	"github.com/jask/inkbar/schema"
)

// ---------------------------------------------------------------------------
// Toolbar tree
// ---------------------------------------------------------------------------
//
// Compose produces a pure description of the bar: what renders, in what
// order, under which visibility predicate. Hidden sections stay in the tree
// (and in whatever surface renders it) so their input state survives
// show/hide cycles. Rendering and input handling live elsewhere.

type ItemKind int

const (
	ItemTool ItemKind = iota
	ItemAction
	ItemDivider
	ItemColorTrigger
	ItemStyleTrigger
)

// Item is one slot in the primary bar.
type Item struct {
	Kind     ItemKind
	ID       string
	Label    string
	Icon     string
	Danger   bool
	Selected predicate.Expr // nil: never highlighted
	Disabled predicate.Expr // nil: always enabled
	Action   Action
	Popover  *Panel // trigger items only
}

// Panel is a popover attached to a trigger item.
type Panel struct {
	ID       string
	Visible  predicate.Expr
	Sections []Section
}

// Section is a labeled region of a panel. Invisible sections render no
// interactive surface but remain mounted.
type Section struct {
	Label    string
	Visible  predicate.Expr // nil: always visible
	Controls []Control
}

type ControlKind int

const (
	ControlButton ControlKind = iota
	ControlSwatch
	ControlHexSwatch
	ControlNoFill
	ControlColorInput
	ControlSlider
)

// Control is one interactive element inside a section.
type Control struct {
	Kind     ControlKind
	Label    string
	Icon     string
	Index    int    // swatch index into the palette list
	Hex      string // raw hex for theme-invariant swatches
	Selected predicate.Expr
	Action   Action
	Bind     *schema.Cell // sliders and color inputs
	Min      float64
	Max      float64
	Step     float64
}

// Tree is the composed toolbar.
type Tree struct {
	Bar []Item
}

// Panels returns the popover panels present in the bar, in order.
func (t *Tree) Panels() []*Panel {
	var out []*Panel
	for i := range t.Bar {
		if p := t.Bar[i].Popover; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// ToolIDs returns the tool ids rendered in the bar, in order.
func (t *Tree) ToolIDs() []string {
	var out []string
	for _, it := range t.Bar {
		if it.Kind == ItemTool {
			out = append(out, it.ID)
		}
	}
	return out
}

// toolIcons are the bar glyphs per tool.
var toolIcons = map[string]string{
	"select":      "➤",
	"pen":         "✎",
	"line":        "─",
	"arrow":       "↗",
	"rect":        "▭",
	"ellipse":     "◯",
	"diamond":     "◇",
	"text":        "T",
	"highlighter": "▰",
	"eraser":      "⌫",
}

var arrowheadOptions = []struct {
	label string
	value string
}{
	{"None", "none"},
	{"Arrow", "arrow"},
	{"Circle", "circle"},
	{"Bar", "bar"},
	{"Diamond", "diamond"},
}

var widthPresets = []float64{1, 2, 4, 8, 16}

// Compose assembles the toolbar tree from the schema, predicates and
// configuration. Deterministic given the configuration; every visibility or
// selection predicate is validated against the registry and interned, so two
// sections sharing criteria hold the same expression instance.
func (tb *Toolbar) Compose() (*Tree, error) {
	in := newInterner()
	tree := &Tree{}

	tree.Bar = append(tree.Bar, tb.composeToolButtons(in)...)

	if tb.cfg.ShowUndo {
		tree.Bar = append(tree.Bar,
			Item{Kind: ItemDivider},
			Item{
				Kind: ItemAction, ID: "undo", Label: "Undo", Icon: "↶",
				Disabled: in.intern(predicate.Not(predicate.C(tb.canUndo))),
				Action:   Action{Op: OpUndo},
			},
			Item{
				Kind: ItemAction, ID: "redo", Label: "Redo", Icon: "↷",
				Disabled: in.intern(predicate.Not(predicate.C(tb.canRedo))),
				Action:   Action{Op: OpRedo},
			},
			Item{
				Kind: ItemAction, ID: "clear", Label: "Clear canvas", Icon: "🗑", Danger: true,
				Action: Action{Op: OpClear},
			},
		)
	}

	if tb.cfg.ShowColors {
		tree.Bar = append(tree.Bar,
			Item{Kind: ItemDivider},
			Item{
				Kind: ItemColorTrigger, ID: "colors", Label: "Colors",
				Action:  Action{Op: OpToggleColorPopover},
				Popover: tb.composeColorPanel(in),
			},
		)
	}

	if tb.cfg.ShowStyles {
		tree.Bar = append(tree.Bar, Item{
			Kind: ItemStyleTrigger, ID: "styles", Label: "Style options", Icon: "☰",
			Selected: in.intern(tb.preds.StylePanelVisible),
			Action:   Action{Op: OpToggleStylePopover},
			Popover:  tb.composeStylePanel(in),
		})
	}

	if err := tree.check(tb.reg); err != nil {
		return nil, err
	}
	return tree, nil
}

// composeToolButtons renders the tool groups in declared order, inserting a
// divider between non-empty groups only.
func (tb *Toolbar) composeToolButtons(in *interner) []Item {
	var items []Item
	for _, group := range toolGroups {
		var btns []Item
		for _, def := range group {
			if !tb.cfg.hasTool(def.id) {
				continue
			}
			btns = append(btns, Item{
				Kind:     ItemTool,
				ID:       def.id,
				Label:    def.label,
				Icon:     toolIcons[def.id],
				Selected: in.intern(predicate.Eq(predicate.C(tb.tool), predicate.Str(def.id))),
				Action:   Action{Op: OpSwitchTool, Name: def.id},
			})
		}
		if len(btns) == 0 {
			continue
		}
		if len(items) > 0 {
			items = append(items, Item{Kind: ItemDivider})
		}
		items = append(items, btns...)
	}
	return items
}

func (tb *Toolbar) composeColorPanel(in *interner) *Panel {
	strokeSel := func(i int) predicate.Expr {
		return in.intern(predicate.Eq(predicate.C(tb.strokeToken), predicate.Num(float64(i))))
	}
	fillSel := func(i int) predicate.Expr {
		return in.intern(predicate.And(
			predicate.Eq(predicate.C(tb.fillToken), predicate.Num(float64(i))),
			predicate.C(tb.fillEnabled),
		))
	}

	stroke := Section{Label: "Stroke"}
	for i := 0; i < tb.cfg.Palette.Len(palette.Stroke); i++ {
		stroke.Controls = append(stroke.Controls, Control{
			Kind: ControlSwatch, Index: i,
			Selected: strokeSel(i),
			Action:   Action{Op: OpSetStrokeToken, Index: i},
		})
	}
	stroke.Controls = append(stroke.Controls, Control{
		Kind: ControlColorInput, Label: "Custom stroke color",
		Bind:   tb.strokeCSS,
		Action: Action{Op: OpCustomStrokeColor},
	})

	fill := Section{Label: "Fill"}
	fill.Controls = append(fill.Controls, Control{
		Kind: ControlNoFill, Label: "No fill",
		Selected: in.intern(predicate.Not(predicate.C(tb.fillEnabled))),
		Action:   Action{Op: OpDisableFill},
	})
	for i := 0; i < tb.cfg.Palette.Len(palette.Fill); i++ {
		fill.Controls = append(fill.Controls, Control{
			Kind: ControlSwatch, Index: i,
			Selected: fillSel(i),
			Action:   Action{Op: OpSetFillToken, Index: i},
		})
	}
	fill.Controls = append(fill.Controls, Control{
		Kind: ControlColorInput, Label: "Custom fill color",
		Bind:   tb.fillCSS,
		Action: Action{Op: OpCustomFillColor},
	})

	highlighter := Section{
		Label:   "Highlighter",
		Visible: in.intern(predicate.Eq(predicate.C(tb.tool), predicate.Str("highlighter"))),
	}
	for _, s := range tb.cfg.Palette.Highlighter() {
		highlighter.Controls = append(highlighter.Controls, Control{
			Kind: ControlHexSwatch, Label: s.Name, Hex: s.Hex,
			Selected: in.intern(predicate.Eq(predicate.C(tb.strokeCSS), predicate.Str(s.Hex))),
			Action:   Action{Op: OpSetHighlighter, Value: s.Hex},
		})
	}

	return &Panel{
		ID:       tb.cfg.Name + "-color-panel",
		Visible:  in.intern(tb.preds.ColorPanelVisible),
		Sections: []Section{stroke, fill, highlighter},
	}
}

func (tb *Toolbar) composeStylePanel(in *interner) *Panel {
	width := Section{Label: "Width", Visible: in.intern(tb.preds.ShowWidth)}
	for _, sz := range widthPresets {
		width.Controls = append(width.Controls, Control{
			Kind: ControlButton, Label: fmt.Sprintf("%gpx", sz),
			Selected: in.intern(predicate.Eq(predicate.C(tb.strokeWidth), predicate.Num(sz))),
			Action:   Action{Op: OpSetStyleProperty, Name: "stroke_width", Value: sz},
		})
	}

	dash := Section{Label: "Stroke", Visible: in.intern(tb.preds.ShowStroke)}
	for _, preset := range []struct {
		name string
		sel  predicate.Expr
	}{
		{"solid", tb.preds.Solid},
		{"dashed", tb.preds.Dashed},
		{"dotted", tb.preds.Dotted},
	} {
		dash.Controls = append(dash.Controls, Control{
			Kind: ControlButton, Label: preset.name,
			Selected: in.intern(preset.sel),
			Action:   Action{Op: OpDashPreset, Name: preset.name},
		})
	}

	// Fine-tuning sliders reveal after a preset selects dashed or dotted.
	dashSize := Section{
		Label:   "Dash size",
		Visible: in.intern(predicate.And(tb.preds.ShowStroke, tb.preds.Dashed)),
		Controls: []Control{{
			Kind: ControlSlider, Label: "Dash length",
			Bind: tb.dashLength, Min: 2, Max: 12, Step: 1,
			Action: Action{Op: OpSetStyleProperty, Name: "dash_length"},
		}},
	}
	dotSpacing := Section{
		Label:   "Dot spacing",
		Visible: in.intern(predicate.And(tb.preds.ShowStroke, tb.preds.Dotted)),
		Controls: []Control{{
			Kind: ControlSlider, Label: "Dot spacing",
			Bind: tb.dashGap, Min: 2, Max: 12, Step: 0.5,
			Action: Action{Op: OpSetStyleProperty, Name: "dash_gap"},
		}},
	}

	opacity := Section{
		Label: "Opacity",
		Controls: []Control{{
			Kind: ControlSlider, Label: "Opacity",
			Bind: tb.opacity, Min: 0, Max: 1, Step: 0.1,
			Action: Action{Op: OpSetStyleProperty, Name: "opacity"},
		}},
	}

	arrowCtx := in.intern(predicate.Or(
		predicate.Eq(predicate.C(tb.tool), predicate.Str("arrow")),
		predicate.C(tb.selIsLine),
	))
	start := Section{Label: "Start", Visible: arrowCtx}
	end := Section{Label: "End", Visible: arrowCtx}
	for _, opt := range arrowheadOptions {
		start.Controls = append(start.Controls, Control{
			Kind: ControlButton, Label: opt.label,
			Selected: in.intern(predicate.Eq(predicate.C(tb.startArrow), predicate.Str(opt.value))),
			Action:   Action{Op: OpSetStyleProperty, Name: "start_arrowhead", Value: opt.value},
		})
		end.Controls = append(end.Controls, Control{
			Kind: ControlButton, Label: opt.label,
			Selected: in.intern(predicate.Eq(predicate.C(tb.endArrow), predicate.Str(opt.value))),
			Action:   Action{Op: OpSetStyleProperty, Name: "end_arrowhead", Value: opt.value},
		})
	}

	textCtx := in.intern(tb.preds.IsTextCtx)
	font := Section{Label: "Font", Visible: textCtx}
	for _, opt := range []struct{ label, value string }{
		{"Hand", "hand-drawn"}, {"Sans", "normal"}, {"Mono", "monospace"},
	} {
		font.Controls = append(font.Controls, Control{
			Kind: ControlButton, Label: opt.label,
			Selected: in.intern(predicate.Eq(predicate.C(tb.fontFamily), predicate.Str(opt.value))),
			Action:   Action{Op: OpSetTextProperty, Name: "font_family", Value: opt.value},
		})
	}
	size := Section{Label: "Size", Visible: textCtx}
	for _, opt := range []struct{ label, value string }{
		{"S", "small"}, {"M", "medium"}, {"L", "large"},
	} {
		size.Controls = append(size.Controls, Control{
			Kind: ControlButton, Label: opt.label,
			Selected: in.intern(predicate.Eq(predicate.C(tb.fontSize), predicate.Str(opt.value))),
			Action:   Action{Op: OpSetTextProperty, Name: "font_size", Value: opt.value},
		})
	}
	align := Section{Label: "Align", Visible: textCtx}
	for _, opt := range []struct{ label, value string }{
		{"⇤", "left"}, {"⇔", "center"}, {"⇥", "right"},
	} {
		align.Controls = append(align.Controls, Control{
			Kind: ControlButton, Label: opt.label,
			Selected: in.intern(predicate.Eq(predicate.C(tb.textAlign), predicate.Str(opt.value))),
			Action:   Action{Op: OpSetTextProperty, Name: "text_align", Value: opt.value},
		})
	}

	return &Panel{
		ID:      tb.cfg.Name + "-style-panel",
		Visible: in.intern(tb.preds.StylePanelVisible),
		Sections: []Section{
			width, dash, dashSize, dotSpacing, opacity,
			start, end, font, size, align,
		},
	}
}

// check validates every predicate in the tree against the registry.
func (t *Tree) check(reg *schema.Registry) error {
	checkExpr := func(e predicate.Expr) error {
		if e == nil {
			return nil
		}
		return e.Check(reg)
	}
	for _, it := range t.Bar {
		for _, e := range []predicate.Expr{it.Selected, it.Disabled} {
			if err := checkExpr(e); err != nil {
				return fmt.Errorf("item %q: %w", it.ID, err)
			}
		}
		if it.Popover == nil {
			continue
		}
		if err := checkExpr(it.Popover.Visible); err != nil {
			return fmt.Errorf("panel %q: %w", it.Popover.ID, err)
		}
		for _, sec := range it.Popover.Sections {
			if err := checkExpr(sec.Visible); err != nil {
				return fmt.Errorf("section %q: %w", sec.Label, err)
			}
			for _, ctl := range sec.Controls {
				if err := checkExpr(ctl.Selected); err != nil {
					return fmt.Errorf("control %q: %w", ctl.Label, err)
				}
				if ctl.Bind != nil && !reg.Has(ctl.Bind) {
					return fmt.Errorf("control %q: %w", ctl.Label, schema.ErrUnknownCell)
				}
			}
		}
	}
	return nil
}

// interner deduplicates structurally equal predicates so every consumer of a
// shared criterion holds the same instance.
type interner struct {
	byForm map[string]predicate.Expr
}

func newInterner() *interner {
	return &interner{byForm: make(map[string]predicate.Expr)}
}

func (in *interner) intern(e predicate.Expr) predicate.Expr {
	form := e.String()
	if got, ok := in.byForm[form]; ok {
		return got
	}
	in.byForm[form] = e
	return e
}
