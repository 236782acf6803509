package toolbar

import "context"

// Controller is the external drawing engine boundary. The toolbar never
// inspects drawing state; it forwards one call per interaction and receives
// state back through a patch (see Toolbar.ApplyPatch). ExportSVG is the only
// call with a deferred result.
type Controller interface {
	SwitchTool(id string)
	Undo()
	Redo()
	DeleteSelected()
	SelectAll()
	DeselectAll()
	DuplicateSelected()
	BringToFront()
	SendToBack()
	SetTextProperty(name string, value any)
	SetStyleProperty(name string, value any)
	SetDashPreset(name string)
	ExportSVG(ctx context.Context) (string, error)
	ImportSVG(text string)
	Clear(layer string)
	ApplyRemoteChanges(patch map[string]any)
	Snapshot() any
	SetTheme(name string)
	PrefetchFonts()
}

// NopController discards every call. Useful for composing and testing a
// toolbar without a drawing engine mounted.
type NopController struct{}

func (NopController) SwitchTool(string)                   {}
func (NopController) Undo()                               {}
func (NopController) Redo()                               {}
func (NopController) DeleteSelected()                     {}
func (NopController) SelectAll()                          {}
func (NopController) DeselectAll()                        {}
func (NopController) DuplicateSelected()                  {}
func (NopController) BringToFront()                       {}
func (NopController) SendToBack()                         {}
func (NopController) SetTextProperty(string, any)         {}
func (NopController) SetStyleProperty(string, any)        {}
func (NopController) SetDashPreset(string)                {}
func (NopController) ImportSVG(string)                    {}
func (NopController) Clear(string)                        {}
func (NopController) ApplyRemoteChanges(map[string]any)   {}
func (NopController) Snapshot() any                       { return nil }
func (NopController) SetTheme(string)                     {}
func (NopController) PrefetchFonts()                      {}

func (NopController) ExportSVG(context.Context) (string, error) { return "", nil }
