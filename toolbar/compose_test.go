package toolbar

import (
	"testing"

	"github.com/jask/inkbar/palette"
	"github.com/jask/inkbar/predicate"
)

func composeTest(t *testing.T, cfg Config) (*Toolbar, *Tree) {
	t.Helper()
	tb, _, _ := newTestToolbar(t, cfg)
	tree, err := tb.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return tb, tree
}

func TestComposeDividerBetweenNonEmptyGroupsOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []string{"pen", "line", "rect"}
	cfg.DefaultTool = "pen"
	cfg.ShowUndo = false
	cfg.ShowColors = false
	cfg.ShowStyles = false
	_, tree := composeTest(t, cfg)

	// The select group is empty, so no leading divider; pen/line and rect
	// come from adjacent non-empty groups with exactly one divider between.
	var got []string
	for _, it := range tree.Bar {
		if it.Kind == ItemDivider {
			got = append(got, "|")
			continue
		}
		got = append(got, it.ID)
	}
	want := []string{"pen", "line", "|", "rect"}
	if len(got) != len(want) {
		t.Fatalf("bar = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bar = %v, want %v", got, want)
		}
	}
}

func TestComposeToolOrderFollowsGroups(t *testing.T) {
	// Declaration order in the config does not reorder the bar.
	cfg := DefaultConfig()
	cfg.Tools = []string{"eraser", "select", "pen"}
	cfg.DefaultTool = "pen"
	_, tree := composeTest(t, cfg)

	ids := tree.ToolIDs()
	want := []string{"select", "pen", "eraser"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("tool order = %v, want %v", ids, want)
		}
	}
}

func TestComposeDeterministic(t *testing.T) {
	tb, tree := composeTest(t, DefaultConfig())
	again, err := tb.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(tree.Bar) != len(again.Bar) {
		t.Fatalf("bar lengths differ: %d vs %d", len(tree.Bar), len(again.Bar))
	}
	for i := range tree.Bar {
		if tree.Bar[i].Kind != again.Bar[i].Kind || tree.Bar[i].ID != again.Bar[i].ID {
			t.Fatalf("bar item %d differs: %+v vs %+v", i, tree.Bar[i], again.Bar[i])
		}
	}
}

func TestComposeSharedCriteriaInterned(t *testing.T) {
	_, tree := composeTest(t, DefaultConfig())

	style := panelByID(t, tree, "tb-style-panel")
	var start, end, font, size predicate.Expr
	for _, sec := range style.Sections {
		switch sec.Label {
		case "Start":
			start = sec.Visible
		case "End":
			end = sec.Visible
		case "Font":
			font = sec.Visible
		case "Size":
			size = sec.Visible
		}
	}
	// Sections sharing criteria hold the same instance, so a renderer can
	// evaluate each distinct predicate once per frame.
	if start != end {
		t.Fatal("start/end arrowhead sections hold different predicate instances")
	}
	if font != size {
		t.Fatal("font/size sections hold different predicate instances")
	}
	if !predicate.Equal(start, end) {
		t.Fatal("interned predicates not structurally equal")
	}
}

func TestComposeHiddenSectionsStayMounted(t *testing.T) {
	tb, tree := composeTest(t, DefaultConfig())

	color := panelByID(t, tree, "tb-color-panel")
	var highlighter *Section
	for i := range color.Sections {
		if color.Sections[i].Label == "Highlighter" {
			highlighter = &color.Sections[i]
		}
	}
	if highlighter == nil {
		t.Fatal("highlighter section missing from tree")
	}
	if predicate.EvalBool(highlighter.Visible) {
		t.Fatal("highlighter section visible under pen")
	}
	if err := tb.SwitchTool("highlighter"); err != nil {
		t.Fatalf("SwitchTool: %v", err)
	}
	// No recomposition: the same tree instance reflects the new state.
	if !predicate.EvalBool(highlighter.Visible) {
		t.Fatal("highlighter section hidden under highlighter")
	}
}

func TestComposeUndoDisabledUntilPatch(t *testing.T) {
	tb, tree := composeTest(t, DefaultConfig())

	undo := itemByID(t, tree, "undo")
	if !predicate.EvalBool(undo.Disabled) {
		t.Fatal("undo enabled with empty history")
	}
	if err := tb.ApplyPatch(map[string]any{"can_undo": true}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if predicate.EvalBool(undo.Disabled) {
		t.Fatal("undo still disabled after patch")
	}
}

func TestComposeSelectionTracksTool(t *testing.T) {
	tb, tree := composeTest(t, DefaultConfig())

	pen := itemByID(t, tree, "pen")
	rect := itemByID(t, tree, "rect")
	if !predicate.EvalBool(pen.Selected) || predicate.EvalBool(rect.Selected) {
		t.Fatal("initial selection wrong")
	}
	if err := tb.Do(rect.Action); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if predicate.EvalBool(pen.Selected) || !predicate.EvalBool(rect.Selected) {
		t.Fatal("selection did not follow the tool")
	}
}

func TestComposeSwatchActionsRoundTrip(t *testing.T) {
	tb, tree := composeTest(t, DefaultConfig())

	color := panelByID(t, tree, "tb-color-panel")
	var stroke Section
	for _, sec := range color.Sections {
		if sec.Label == "Stroke" {
			stroke = sec
		}
	}
	if len(stroke.Controls) != tb.cfg.Palette.Len(palette.Stroke)+1 {
		t.Fatalf("stroke controls = %d", len(stroke.Controls))
	}

	third := stroke.Controls[3]
	if err := tb.Do(third.Action); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !predicate.EvalBool(third.Selected) {
		t.Fatal("activated swatch not selected")
	}
	if got := tb.strokeToken.Number(); got != 3 {
		t.Fatalf("stroke_token = %v", got)
	}
}

func panelByID(t *testing.T, tree *Tree, id string) *Panel {
	t.Helper()
	for _, p := range tree.Panels() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("panel %q not found", id)
	return nil
}

func itemByID(t *testing.T, tree *Tree, id string) Item {
	t.Helper()
	for _, it := range tree.Bar {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not found", id)
	return Item{}
}
