package toolbar

import (
	"github.com/jask/inkbar/predicate"
	"github.com/jask/inkbar/schema"
)

// contextPredicates are the derived expressions the composer and renderer
// share. They are built once per toolbar; sections that share criteria hold
// the same expression instance.
type contextPredicates struct {
	// IsTextCtx: the text tool is active, text is being edited inline, or
	// the selection is a text shape.
	IsTextCtx predicate.Expr
	// HasStrokeStyle excludes the freehand tools and the eraser from the
	// dash-style controls.
	HasStrokeStyle predicate.Expr
	ShowWidth      predicate.Expr
	ShowStroke     predicate.Expr
	IsShapeCtx     predicate.Expr

	// Dash preset detection. Mutually exclusive given the preset write
	// contract.
	Solid  predicate.Expr
	Dashed predicate.Expr
	Dotted predicate.Expr

	// StylePanelVisible gates the style popover. With progressive
	// disclosure configured the popover follows the manual toggle alone
	// (the seen-flag rule drives the toggle); without it, text and arrow
	// force the panel open.
	StylePanelVisible predicate.Expr
	ColorPanelVisible predicate.Expr

	all []predicate.Expr
}

func buildPredicates(tb *Toolbar) contextPredicates {
	tool := predicate.C(tb.tool)

	isTextCtx := predicate.Or(
		predicate.Eq(tool, predicate.Str("text")),
		predicate.C(tb.textEditing),
		predicate.C(tb.selIsText),
	)
	hasStrokeStyle := predicate.And(
		predicate.Ne(tool, predicate.Str("pen")),
		predicate.Ne(tool, predicate.Str("highlighter")),
		predicate.Ne(tool, predicate.Str("eraser")),
	)
	showWidth := predicate.Not(isTextCtx)
	showStroke := predicate.And(hasStrokeStyle, predicate.Not(isTextCtx))
	isShapeCtx := predicate.OneOf(tool, "rect", "ellipse", "diamond")

	solid := predicate.And(
		predicate.Eq(predicate.C(tb.dashLength), predicate.Num(0)),
		predicate.Eq(predicate.C(tb.dashGap), predicate.Num(0)),
	)
	dashed := predicate.Ge(predicate.C(tb.dashLength), predicate.Num(1))
	dotted := predicate.And(
		predicate.Lt(predicate.C(tb.dashLength), predicate.Num(1)),
		predicate.Gt(predicate.C(tb.dashGap), predicate.Num(0)),
	)

	styleVisible := predicate.C(tb.styleOpen)
	if len(tb.cfg.RevealOnce) == 0 {
		styleVisible = predicate.Or(
			predicate.C(tb.styleOpen),
			predicate.Eq(tool, predicate.Str("text")),
			predicate.Eq(tool, predicate.Str("arrow")),
		)
	}

	p := contextPredicates{
		IsTextCtx:         isTextCtx,
		HasStrokeStyle:    hasStrokeStyle,
		ShowWidth:         showWidth,
		ShowStroke:        showStroke,
		IsShapeCtx:        isShapeCtx,
		Solid:             solid,
		Dashed:            dashed,
		Dotted:            dotted,
		StylePanelVisible: styleVisible,
		ColorPanelVisible: predicate.C(tb.colorOpen),
	}
	p.all = []predicate.Expr{
		p.IsTextCtx, p.HasStrokeStyle, p.ShowWidth, p.ShowStroke,
		p.IsShapeCtx, p.Solid, p.Dashed, p.Dotted,
		p.StylePanelVisible, p.ColorPanelVisible,
	}
	return p
}

// check validates every derived predicate against the registry. A predicate
// referencing an unregistered cell is a construction error, never a runtime
// fallback.
func (p contextPredicates) check(reg *schema.Registry) error {
	for _, e := range p.all {
		if err := e.Check(reg); err != nil {
			return err
		}
	}
	return nil
}
