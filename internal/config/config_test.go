package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsDecode(t *testing.T) {
	// Point at a file that does not exist so only defaults apply.
	t.Setenv("INKBAR_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.DefaultTool != "pen" {
		t.Fatalf("default_tool = %q, want pen", cfg.UI.DefaultTool)
	}
	if cfg.UI.Theme != "light" || cfg.UI.Preset != "full" || cfg.UI.ReadOnly {
		t.Fatalf("ui defaults = %+v", cfg.UI)
	}
	if cfg.Database.Path == "" {
		t.Fatal("database path default missing")
	}
}

func TestLoadFileDecodesSnakeCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
[ui]
default_tool = "rect"
read_only = true
theme = "dark"

[palette]
stroke_light = ["#111111", "#222222"]
stroke_dark = ["#aaaaaa", "#bbbbbb"]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("INKBAR_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.DefaultTool != "rect" {
		t.Fatalf("default_tool = %q, want rect", cfg.UI.DefaultTool)
	}
	if !cfg.UI.ReadOnly {
		t.Fatal("read_only did not decode")
	}
	if cfg.UI.Theme != "dark" {
		t.Fatalf("theme = %q", cfg.UI.Theme)
	}
	if len(cfg.Palette.StrokeLight) != 2 || cfg.Palette.StrokeLight[1] != "#222222" {
		t.Fatalf("stroke_light = %v", cfg.Palette.StrokeLight)
	}
	if len(cfg.Palette.StrokeDark) != 2 || cfg.Palette.StrokeDark[0] != "#aaaaaa" {
		t.Fatalf("stroke_dark = %v", cfg.Palette.StrokeDark)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("INKBAR_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/inkbar-test.db"},
		UI:       UIConfig{Theme: "dark", DefaultTool: "arrow", Preset: "diagram", ReadOnly: true},
		Palette: PaletteConfig{
			FillLight: []string{"#ffffff", "#fecaca"},
			FillDark:  []string{"#1e1e2e", "#eba0ac"},
		},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UI != want.UI {
		t.Fatalf("ui round-trip = %+v, want %+v", got.UI, want.UI)
	}
	if got.Database.Path != want.Database.Path {
		t.Fatalf("db path = %q", got.Database.Path)
	}
	if len(got.Palette.FillLight) != 2 || got.Palette.FillLight[1] != "#fecaca" {
		t.Fatalf("fill_light = %v", got.Palette.FillLight)
	}
	if len(got.Palette.FillDark) != 2 {
		t.Fatalf("fill_dark = %v", got.Palette.FillDark)
	}
}
