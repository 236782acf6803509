package toolbar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/inkbar/palette"
)

var (
	ErrUnknownTool   = errors.New("toolbar: unknown tool id")
	ErrDuplicateTool = errors.New("toolbar: duplicate tool id")
	ErrBadConfig     = errors.New("toolbar: invalid configuration")
)

// AllTools lists every tool id the toolbar knows, in group order.
var AllTools = []string{
	"select",
	"pen", "line", "arrow",
	"rect", "ellipse", "diamond",
	"text", "highlighter", "eraser",
}

// toolGroups drives bar layout: groups render in declared order with a
// divider between non-empty groups only.
var toolGroups = [][]toolDef{
	{{"select", "Select"}},
	{{"pen", "Pen"}, {"line", "Line"}, {"arrow", "Arrow"}},
	{{"rect", "Rectangle"}, {"ellipse", "Ellipse"}, {"diamond", "Diamond"}},
	{{"text", "Text"}, {"highlighter", "Highlighter"}, {"eraser", "Eraser"}},
}

type toolDef struct {
	id    string
	label string
}

// Config is the full mount-time configuration surface. Fields are enumerated
// and validated up front; there is no open attribute dictionary.
type Config struct {
	// Name is the instance prefix for shared-namespace keys. A random
	// prefix is generated when empty, so two anonymous toolbars on one
	// page never collide.
	Name string

	Tools      []string
	ShowColors bool
	ShowUndo   bool
	ShowStyles bool

	DefaultTool        string
	DefaultStrokeToken palette.Token
	DefaultFillToken   palette.Token
	DefaultStrokeWidth float64
	DefaultOpacity     float64
	DefaultLayer       string

	Throttle        time.Duration
	ViewBoxW        int
	ViewBoxH        int
	ReadOnly        bool
	Theme           palette.Theme
	FontURLs        []string
	Palette         *palette.Palette
	// RevealOnce names the tools whose first activation auto-opens the
	// style popover. Empty disables progressive disclosure entirely; the
	// style panel then follows the plain style_open/text/arrow rule.
	RevealOnce []string
}

// DefaultConfig returns the standard full toolbar.
func DefaultConfig() Config {
	return Config{
		Tools:              append([]string(nil), AllTools...),
		ShowColors:         true,
		ShowUndo:           true,
		ShowStyles:         true,
		DefaultTool:        "pen",
		DefaultStrokeToken: palette.Token{Kind: palette.Stroke, Index: 0},
		DefaultFillToken:   palette.Token{Kind: palette.Fill, Index: 0},
		DefaultStrokeWidth: 2,
		DefaultOpacity:     1,
		DefaultLayer:       "default",
		Throttle:           16 * time.Millisecond,
		ViewBoxW:           800,
		ViewBoxH:           500,
		Theme:              palette.Light,
		RevealOnce:         []string{"arrow", "text"},
	}
}

// AnnotationConfig is the preset for annotation use cases.
func AnnotationConfig() Config {
	c := DefaultConfig()
	c.Tools = []string{"pen", "highlighter", "eraser"}
	c.RevealOnce = nil
	return c
}

// DiagramConfig is the preset for diagramming use cases.
func DiagramConfig() Config {
	c := DefaultConfig()
	c.Tools = []string{"select", "line", "arrow", "rect", "ellipse", "diamond", "text"}
	c.DefaultTool = "select"
	return c
}

// normalize fills derived defaults that depend on other fields.
func (c *Config) normalize() {
	if c.Name == "" {
		// Short uuid fragment keeps shared keys readable.
		c.Name = "drawing-" + uuid.NewString()[:8]
	}
	if c.Palette == nil {
		c.Palette = palette.Default()
	}
	if c.Throttle <= 0 {
		c.Throttle = 16 * time.Millisecond
	}
	if c.DefaultLayer == "" {
		c.DefaultLayer = "default"
	}
	if c.DefaultTool == "" && len(c.Tools) > 0 {
		c.DefaultTool = c.Tools[0]
	}
}

// Validate rejects malformed configuration before any cell is registered.
// Unknown tool ids fail with a nearest-match suggestion.
func (c *Config) Validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("%w: empty tool list", ErrBadConfig)
	}
	seen := make(map[string]bool, len(c.Tools))
	for _, id := range c.Tools {
		if !knownTool(id) {
			return fmt.Errorf("%w: %q%s", ErrUnknownTool, id, suggestTool(id))
		}
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, id)
		}
		seen[id] = true
	}
	if !seen[c.DefaultTool] {
		return fmt.Errorf("%w: default tool %q not in tool list", ErrBadConfig, c.DefaultTool)
	}
	for _, id := range c.RevealOnce {
		if !knownTool(id) {
			return fmt.Errorf("%w: reveal-once %q%s", ErrUnknownTool, id, suggestTool(id))
		}
	}
	if c.DefaultStrokeToken.Kind != palette.Stroke || c.DefaultFillToken.Kind != palette.Fill {
		return fmt.Errorf("%w: default token kinds swapped", ErrBadConfig)
	}
	if c.DefaultOpacity < 0 || c.DefaultOpacity > 1 {
		return fmt.Errorf("%w: opacity %v out of [0,1]", ErrBadConfig, c.DefaultOpacity)
	}
	if c.DefaultStrokeWidth <= 0 {
		return fmt.Errorf("%w: stroke width %v", ErrBadConfig, c.DefaultStrokeWidth)
	}
	return nil
}

func (c *Config) hasTool(id string) bool {
	for _, t := range c.Tools {
		if t == id {
			return true
		}
	}
	return false
}

func (c *Config) revealOnce(id string) bool {
	for _, t := range c.RevealOnce {
		if t == id {
			return true
		}
	}
	return false
}

func knownTool(id string) bool {
	for _, t := range AllTools {
		if t == id {
			return true
		}
	}
	return false
}

// suggestTool returns a ` (did you mean ...)` hint when a known tool id is
// within editing distance 2 of the given id.
func suggestTool(id string) string {
	best, bestDist := "", 3
	for _, t := range AllTools {
		d := levenshtein.ComputeDistance(strings.ToLower(id), t)
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
