package toolbar

import (
	"errors"
	"strings"
	"testing"

	"github.com/jask/inkbar/palette"
)

func TestValidateUnknownToolSuggests(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []string{"pne"}
	cfg.DefaultTool = "pne"

	err := cfg.Validate()
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("err = %v, want ErrUnknownTool", err)
	}
	if !strings.Contains(err.Error(), `did you mean "pen"`) {
		t.Fatalf("no suggestion in %q", err)
	}
}

func TestValidateNoSuggestionWhenFar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []string{"spreadsheet"}
	cfg.DefaultTool = "spreadsheet"

	err := cfg.Validate()
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("err = %v, want ErrUnknownTool", err)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("distant id got a suggestion: %q", err)
	}
}

func TestValidateDuplicateTool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []string{"pen", "pen"}
	cfg.DefaultTool = "pen"
	if err := cfg.Validate(); !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("err = %v, want ErrDuplicateTool", err)
	}
}

func TestValidateDefaultMustBeListed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []string{"pen"}
	cfg.DefaultTool = "rect"
	if err := cfg.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
}

func TestValidateTokenKinds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultStrokeToken = palette.Token{Kind: palette.Fill, Index: 0}
	if err := cfg.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
}

func TestValidateRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultOpacity = 1.5
	if err := cfg.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("opacity: err = %v", err)
	}

	cfg = DefaultConfig()
	cfg.DefaultStrokeWidth = 0
	if err := cfg.Validate(); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("width: err = %v", err)
	}
}

func TestNormalizeGeneratesDistinctNames(t *testing.T) {
	a, b := DefaultConfig(), DefaultConfig()
	a.normalize()
	b.normalize()
	if a.Name == "" || a.Name == b.Name {
		t.Fatalf("names %q / %q", a.Name, b.Name)
	}
	if !strings.HasPrefix(a.Name, "drawing-") {
		t.Fatalf("name %q", a.Name)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), AnnotationConfig(), DiagramConfig()} {
		cfg.normalize()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("preset %q: %v", cfg.Name, err)
		}
	}
}
