package palette

import (
	"errors"
	"testing"
)

func TestResolveIsPureAndRepeatable(t *testing.T) {
	p := Default()
	tok := Token{Stroke, 2}
	first := p.Resolve(tok, Light)
	for i := 0; i < 5; i++ {
		if got := p.Resolve(tok, Light); got != first {
			t.Fatalf("resolution drifted on call %d: %q vs %q", i, got, first)
		}
	}
	if first != "#ef4444" {
		t.Fatalf("light stroke index 2 = %q, want #ef4444", first)
	}
}

func TestThemeSelectsParallelSwatch(t *testing.T) {
	p := Default()
	tok := Token{Stroke, 2}
	if got := p.Resolve(tok, Dark); got != "#f38ba8" {
		t.Fatalf("dark stroke index 2 = %q, want #f38ba8", got)
	}
	// Same (kind, index) under both themes: same user-facing slot.
	if p.Len(Stroke) != len(p.Swatches(Stroke, Dark)) {
		t.Fatalf("stroke lists must be parallel")
	}
}

func TestOutOfRangeIndexFallsBack(t *testing.T) {
	p := Default()
	want := p.Resolve(Token{Fill, 0}, Light)
	if got := p.Resolve(Token{Fill, 99}, Light); got != want {
		t.Fatalf("stale index should fall back to swatch 0: %q vs %q", got, want)
	}
	if got := p.Resolve(Token{Fill, -1}, Light); got != want {
		t.Fatalf("negative index should fall back to swatch 0: %q", got)
	}
}

func TestLengthMismatchFailsFast(t *testing.T) {
	_, err := New(Lists{
		StrokeLight: []Swatch{{"#000000", "Black"}, {"#ffffff", "White"}},
		StrokeDark:  []Swatch{{"#cdd6f4", "Text"}},
	})
	if !errors.Is(err, ErrSwatchMismatch) {
		t.Fatalf("expected ErrSwatchMismatch, got %v", err)
	}
}

func TestEmptyListRejected(t *testing.T) {
	_, err := New(Lists{
		StrokeLight: []Swatch{},
		StrokeDark:  []Swatch{},
	})
	if !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette, got %v", err)
	}
}

func TestOverrideLists(t *testing.T) {
	p, err := New(Lists{
		StrokeLight: []Swatch{{"#111111", "Ink"}},
		StrokeDark:  []Swatch{{"#eeeeee", "Chalk"}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := p.Resolve(Token{Stroke, 0}, Dark); got != "#eeeeee" {
		t.Fatalf("override dark stroke = %q", got)
	}
	// Unoverridden kinds keep the built-in lists.
	if p.Len(Fill) != len(defaultFillLight) {
		t.Fatalf("fill list should default")
	}
}

func TestParseTheme(t *testing.T) {
	cases := []struct {
		in   string
		want Theme
		ok   bool
	}{
		{"light", Light, true},
		{"dark", Dark, true},
		{"", Light, true},
		{"solarized", Light, false},
	}
	for _, c := range cases {
		got, err := ParseTheme(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ParseTheme(%q) = %v, %v", c.in, got, err)
		}
		if !c.ok && !errors.Is(err, ErrUnknownTheme) {
			t.Fatalf("ParseTheme(%q) should fail, got %v", c.in, err)
		}
	}
}

func TestAdaptiveWrapsBothThemes(t *testing.T) {
	p := Default()
	ac := p.Adaptive(Token{Stroke, 7})
	if ac.Light != "#3b82f6" || ac.Dark != "#89b4fa" {
		t.Fatalf("adaptive mismatch: %+v", ac)
	}
}

func TestHighlighterPresets(t *testing.T) {
	p := Default()
	hl := p.Highlighter()
	if len(hl) < 3 {
		t.Fatalf("expected at least 3 highlighter presets, got %d", len(hl))
	}
	for _, s := range hl {
		if len(s.Hex) != 7 || s.Hex[0] != '#' {
			t.Fatalf("highlighter swatch %q is not hex", s.Hex)
		}
	}
}
