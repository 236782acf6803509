package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay composites a floating layer on top of a base view at character
// position (x, y). Both strings are treated as line grids; the base's own
// dimensions bound the result, so a popover near an edge is clipped rather
// than growing the canvas.
func Overlay(base, layer string, x, y int) string {
	baseLines := splitLines(base)
	width := maxLineWidth(baseLines)
	layerLines := splitLines(layer)
	layerWidth := maxLineWidth(layerLines)

	for i, line := range layerLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		layerLine := padRight(line, layerWidth)
		pos := x + ansi.StringWidth(layerLine)
		right := ansi.TruncateLeft(target, pos, "")
		if gap := width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}

		baseLines[row] = left + layerLine + right
	}
	return strings.Join(baseLines, "\n")
}

// AnchorBelow places a layer directly under an anchor row, horizontally
// clamped so the layer stays inside the base.
func AnchorBelow(base, layer string, anchorX, anchorBottom int) string {
	width := maxLineWidth(splitLines(base))
	layerWidth := maxLineWidth(splitLines(layer))
	x := anchorX
	if x+layerWidth > width {
		x = width - layerWidth
	}
	if x < 0 {
		x = 0
	}
	return Overlay(base, layer, x, anchorBottom)
}

// CenterX returns the x offset that centers a layer of the given width
// inside a viewport, never negative.
func CenterX(viewport, layerWidth int) int {
	x := (viewport - layerWidth) / 2
	if x < 0 {
		return 0
	}
	return x
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens s to the given visual width, appending an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
