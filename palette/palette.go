// Package palette maps symbolic color tokens to concrete hex values per
// theme. A token is (kind, index) into a fixed-size ordered swatch list; the
// theme only selects which parallel list the index resolves against, so "the
// same" swatch stays selected when the theme flips.
package palette

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	ErrSwatchMismatch = errors.New("palette: light and dark swatch lists differ in length")
	ErrEmptyPalette   = errors.New("palette: swatch list is empty")
	ErrUnknownTheme   = errors.New("palette: unknown theme")
)

// Theme selects one of the two parallel swatch sets.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// ParseTheme maps a configuration string to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// TokenKind distinguishes the stroke and fill swatch lists.
type TokenKind int

const (
	Stroke TokenKind = iota
	Fill
)

func (k TokenKind) String() string {
	if k == Fill {
		return "fill"
	}
	return "stroke"
}

// Token is a symbolic, theme-independent reference to a swatch.
type Token struct {
	Kind  TokenKind
	Index int
}

// Swatch is one concrete color with a user-facing name.
type Swatch struct {
	Hex  string
	Name string
}

// Palette holds the parallel light/dark swatch lists for both token kinds,
// plus the highlighter presets. Construction enforces the equal-length
// invariant; resolution after that never fails.
type Palette struct {
	strokeLight []Swatch
	strokeDark  []Swatch
	fillLight   []Swatch
	fillDark    []Swatch
	highlighter []Swatch
}

// Lists carries the swatch lists into New. Any nil list falls back to the
// built-in default for that slot.
type Lists struct {
	StrokeLight []Swatch
	StrokeDark  []Swatch
	FillLight   []Swatch
	FillDark    []Swatch
	Highlighter []Swatch
}

// New validates and builds a palette. Light and dark lists of the same kind
// must have equal length, and no list may be empty.
func New(l Lists) (*Palette, error) {
	p := &Palette{
		strokeLight: orDefault(l.StrokeLight, defaultStrokeLight),
		strokeDark:  orDefault(l.StrokeDark, defaultStrokeDark),
		fillLight:   orDefault(l.FillLight, defaultFillLight),
		fillDark:    orDefault(l.FillDark, defaultFillDark),
		highlighter: orDefault(l.Highlighter, defaultHighlighter),
	}
	if len(p.strokeLight) == 0 || len(p.fillLight) == 0 {
		return nil, ErrEmptyPalette
	}
	if len(p.strokeLight) != len(p.strokeDark) {
		return nil, fmt.Errorf("%w: stroke %d/%d", ErrSwatchMismatch, len(p.strokeLight), len(p.strokeDark))
	}
	if len(p.fillLight) != len(p.fillDark) {
		return nil, fmt.Errorf("%w: fill %d/%d", ErrSwatchMismatch, len(p.fillLight), len(p.fillDark))
	}
	return p, nil
}

// DefaultLists returns copies of the built-in swatch lists, for callers that
// override some slots and keep the rest.
func DefaultLists() Lists {
	cp := func(l []Swatch) []Swatch {
		out := make([]Swatch, len(l))
		copy(out, l)
		return out
	}
	return Lists{
		StrokeLight: cp(defaultStrokeLight),
		StrokeDark:  cp(defaultStrokeDark),
		FillLight:   cp(defaultFillLight),
		FillDark:    cp(defaultFillDark),
		Highlighter: cp(defaultHighlighter),
	}
}

// Default returns the built-in palette. It always validates.
func Default() *Palette {
	p, err := New(Lists{})
	if err != nil {
		panic(err) // built-in lists are parallel by construction
	}
	return p
}

func orDefault(l, def []Swatch) []Swatch {
	if l == nil {
		return def
	}
	return l
}

func (p *Palette) list(kind TokenKind, theme Theme) []Swatch {
	switch {
	case kind == Stroke && theme == Light:
		return p.strokeLight
	case kind == Stroke && theme == Dark:
		return p.strokeDark
	case kind == Fill && theme == Light:
		return p.fillLight
	default:
		return p.fillDark
	}
}

// Resolve returns the hex value for a token under a theme. An out-of-range
// index resolves to the first swatch rather than failing: resolution runs on
// every render and must never take the UI down over stale state.
func (p *Palette) Resolve(t Token, theme Theme) string {
	l := p.list(t.Kind, theme)
	if t.Index < 0 || t.Index >= len(l) {
		return l[0].Hex
	}
	return l[t.Index].Hex
}

// Swatches returns the swatch list for a kind under a theme, in display order.
func (p *Palette) Swatches(kind TokenKind, theme Theme) []Swatch {
	l := p.list(kind, theme)
	out := make([]Swatch, len(l))
	copy(out, l)
	return out
}

// Highlighter returns the highlighter preset swatches. These stay the same
// across themes: a highlight reads the same on paper regardless of UI theme.
func (p *Palette) Highlighter() []Swatch {
	out := make([]Swatch, len(p.highlighter))
	copy(out, p.highlighter)
	return out
}

// Len returns the swatch count for a kind (equal across themes by invariant).
func (p *Palette) Len(kind TokenKind) int {
	return len(p.list(kind, Light))
}

// Adaptive renders a token as a lipgloss adaptive color so terminal output
// follows the host background without re-resolving.
func (p *Palette) Adaptive(t Token) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: p.Resolve(t, Light),
		Dark:  p.Resolve(t, Dark),
	}
}

// ---------------------------------------------------------------------------
// Built-in swatch lists
// ---------------------------------------------------------------------------
//
// Light strokes follow the TLDraw/Excalidraw-style curated palette; dark
// strokes are the parallel Catppuccin Mocha accents at the same indexes.

var defaultStrokeLight = []Swatch{
	{"#1e1e1e", "Black"},
	{"#6b7280", "Gray"},
	{"#ef4444", "Red"},
	{"#f97316", "Orange"},
	{"#eab308", "Yellow"},
	{"#22c55e", "Green"},
	{"#06b6d4", "Cyan"},
	{"#3b82f6", "Blue"},
	{"#8b5cf6", "Violet"},
	{"#ec4899", "Pink"},
}

var defaultStrokeDark = []Swatch{
	{"#cdd6f4", "Text"},
	{"#9399b2", "Gray"},
	{"#f38ba8", "Red"},
	{"#fab387", "Peach"},
	{"#f9e2af", "Yellow"},
	{"#a6e3a1", "Green"},
	{"#89dceb", "Sky"},
	{"#89b4fa", "Blue"},
	{"#cba6f7", "Mauve"},
	{"#f5c2e7", "Pink"},
}

var defaultFillLight = []Swatch{
	{"#ffffff", "White"},
	{"#f3f4f6", "Light gray"},
	{"#fecaca", "Red"},
	{"#fed7aa", "Orange"},
	{"#fef08a", "Yellow"},
	{"#bbf7d0", "Green"},
	{"#a5f3fc", "Cyan"},
	{"#bfdbfe", "Blue"},
	{"#ddd6fe", "Violet"},
	{"#fbcfe8", "Pink"},
}

var defaultFillDark = []Swatch{
	{"#1e1e2e", "Base"},
	{"#313244", "Surface"},
	{"#eba0ac", "Maroon"},
	{"#fab387", "Peach"},
	{"#f9e2af", "Yellow"},
	{"#a6e3a1", "Green"},
	{"#94e2d5", "Teal"},
	{"#74c7ec", "Sapphire"},
	{"#b4befe", "Lavender"},
	{"#f5c2e7", "Pink"},
}

var defaultHighlighter = []Swatch{
	{"#FFFF00", "Yellow"},
	{"#FF69B4", "Pink"},
	{"#87CEEB", "Blue"},
	{"#90EE90", "Green"},
	{"#FFA500", "Orange"},
}
