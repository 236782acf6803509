package widgets

import (
	"strings"
	"testing"
)

func TestOverlayPlacesLayer(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")
	out := Overlay(base, "XX", 3, 1)
	lines := strings.Split(out, "\n")
	if lines[1] != "...XX....." {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[0] != ".........." || lines[2] != ".........." {
		t.Fatalf("untouched rows changed:\n%s", out)
	}
}

func TestOverlayClipsOutOfRangeRows(t *testing.T) {
	base := "....\n...."
	out := Overlay(base, "A\nB\nC\nD", 0, 1)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("base grew to %d rows", len(lines))
	}
	// Layer line 0 lands on row y=1; the remaining lines fall past the base
	// and are dropped.
	if lines[0] != "...." {
		t.Fatalf("row 0 = %q", lines[0])
	}
	if lines[1] != "A..." {
		t.Fatalf("row 1 = %q", lines[1])
	}
	for _, leaked := range []string{"B", "C", "D"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("clipped line %q leaked:\n%s", leaked, out)
		}
	}
}

func TestOverlayMultiRow(t *testing.T) {
	base := strings.Repeat(".....\n", 3) + "....."
	out := Overlay(base, "ab\ncd", 1, 1)
	lines := strings.Split(out, "\n")
	if lines[1] != ".ab.." || lines[2] != ".cd.." {
		t.Fatalf("overlay rows:\n%s", out)
	}
}

func TestAnchorBelowClampsToBase(t *testing.T) {
	base := "......\n......"
	out := AnchorBelow(base, "WXYZ", 5, 1)
	lines := strings.Split(out, "\n")
	if lines[1] != "..WXYZ" {
		t.Fatalf("clamped row = %q", lines[1])
	}

	out = AnchorBelow(base, "WXYZ", -3, 0)
	lines = strings.Split(out, "\n")
	if lines[0] != "WXYZ.." {
		t.Fatalf("left clamp row = %q", lines[0])
	}
}

func TestCenterX(t *testing.T) {
	if got := CenterX(10, 4); got != 3 {
		t.Fatalf("CenterX = %d", got)
	}
	if got := CenterX(3, 10); got != 0 {
		t.Fatalf("CenterX negative clamp = %d", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Fatalf("Truncate zero = %q", got)
	}
}
