package toolbar

import "fmt"

// ActionOp enumerates what a control does when activated.
type ActionOp int

const (
	OpNone ActionOp = iota
	OpSwitchTool
	OpUndo
	OpRedo
	OpClear
	OpToggleColorPopover
	OpToggleStylePopover
	OpSetStrokeToken
	OpSetFillToken
	OpDisableFill
	OpCustomStrokeColor
	OpCustomFillColor
	OpSetHighlighter
	OpSetStyleProperty
	OpSetTextProperty
	OpDashPreset
)

// Action is a typed interaction descriptor carried by the composed tree. The
// tree stays pure data; Do executes an action against the toolbar.
type Action struct {
	Op    ActionOp
	Name  string // tool id, property name or preset name
	Index int    // palette swatch index
	Value any    // property value or raw hex
}

// Do dispatches an action from the composed tree.
func (tb *Toolbar) Do(a Action) error {
	switch a.Op {
	case OpNone:
		return nil
	case OpSwitchTool:
		return tb.SwitchTool(a.Name)
	case OpUndo:
		tb.Undo()
		return nil
	case OpRedo:
		tb.Redo()
		return nil
	case OpClear:
		tb.Clear()
		return nil
	case OpToggleColorPopover:
		return tb.ToggleColorPopover()
	case OpToggleStylePopover:
		return tb.ToggleStylePopover()
	case OpSetStrokeToken:
		return tb.SetStrokeToken(a.Index)
	case OpSetFillToken:
		return tb.SetFillToken(a.Index)
	case OpDisableFill:
		return tb.DisableFill()
	case OpCustomStrokeColor:
		hex, _ := a.Value.(string)
		return tb.SetCustomStrokeColor(hex)
	case OpCustomFillColor:
		hex, _ := a.Value.(string)
		return tb.SetCustomFillColor(hex)
	case OpSetHighlighter:
		hex, _ := a.Value.(string)
		return tb.SetCustomStrokeColor(hex)
	case OpSetStyleProperty:
		return tb.SetStyleProperty(a.Name, a.Value)
	case OpSetTextProperty:
		return tb.SetTextProperty(a.Name, a.Value)
	case OpDashPreset:
		return tb.SetDashPreset(a.Name)
	}
	return fmt.Errorf("%w: action op %d", ErrBadConfig, int(a.Op))
}
