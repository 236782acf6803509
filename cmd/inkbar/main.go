package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inkbar/internal/config"
	"github.com/jask/inkbar/internal/prefs"
	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/shared"
	"github.com/jask/inkbar/toolbar"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	store, err := prefs.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open prefs: %v", err)
	}
	defer store.Close()

	tcfg, err := toolbarConfig(cfg)
	if err != nil {
		log.Fatalf("toolbar config: %v", err)
	}

	ns := shared.NewNamespace()
	pad := newSketchpad(store, tcfg.ViewBoxW, tcfg.ViewBoxH)
	tb, err := toolbar.New(tcfg, ns, pad)
	if err != nil {
		log.Fatalf("toolbar: %v", err)
	}

	// Restore persisted style defaults before first render.
	if patch, err := store.Snapshot(); err == nil && len(patch) > 0 {
		if err := tb.ApplyPatch(patch); err != nil {
			log.Printf("warn: restore prefs: %v", err)
		}
	}

	bar, err := toolbar.NewComponent(tb)
	if err != nil {
		log.Fatalf("compose: %v", err)
	}

	p := tea.NewProgram(newDemoModel(bar, pad, ns), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// toolbarConfig maps file/env configuration to a validated toolbar config.
func toolbarConfig(cfg config.Config) (toolbar.Config, error) {
	var tcfg toolbar.Config
	switch cfg.UI.Preset {
	case "", "full":
		tcfg = toolbar.DefaultConfig()
	case "annotation":
		tcfg = toolbar.AnnotationConfig()
	case "diagram":
		tcfg = toolbar.DiagramConfig()
	default:
		return toolbar.Config{}, fmt.Errorf("unknown preset %q", cfg.UI.Preset)
	}

	if cfg.UI.DefaultTool != "" {
		tcfg.DefaultTool = cfg.UI.DefaultTool
	}
	tcfg.ReadOnly = cfg.UI.ReadOnly
	th, err := palette.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return toolbar.Config{}, err
	}
	tcfg.Theme = th

	pal, err := buildPalette(cfg.Palette)
	if err != nil {
		return toolbar.Config{}, err
	}
	tcfg.Palette = pal
	return tcfg, nil
}

// buildPalette applies configured swatch overrides on top of the built-in
// lists. Mismatched light/dark lengths fail here, at startup.
func buildPalette(pc config.PaletteConfig) (*palette.Palette, error) {
	if len(pc.StrokeLight) == 0 && len(pc.FillLight) == 0 {
		return palette.Default(), nil
	}
	lists := palette.DefaultLists()
	if len(pc.StrokeLight) > 0 {
		lists.StrokeLight = swatches(pc.StrokeLight)
		lists.StrokeDark = swatches(pc.StrokeDark)
	}
	if len(pc.FillLight) > 0 {
		lists.FillLight = swatches(pc.FillLight)
		lists.FillDark = swatches(pc.FillDark)
	}
	return palette.New(lists)
}

func swatches(hexes []string) []palette.Swatch {
	out := make([]palette.Swatch, len(hexes))
	for i, h := range hexes {
		out[i] = palette.Swatch{Hex: h, Name: fmt.Sprintf("custom-%d", i)}
	}
	return out
}
