package schema

import (
	"errors"
	"testing"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	r := NewRegistry()
	tool, err := r.Register("tool", String, Local, "pen")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	width, _ := r.Register("stroke_width", Number, Local, 2)
	open, _ := r.Register("style_open", Bool, Local, false)
	r.Seal()

	if _, err := r.Write(tool, "rect"); err != nil {
		t.Fatalf("write tool: %v", err)
	}
	if got := tool.Str(); got != "rect" {
		t.Fatalf("tool = %q, want rect", got)
	}
	if _, err := r.Write(width, 8); err != nil {
		t.Fatalf("write width: %v", err)
	}
	if got := width.Number(); got != 8 {
		t.Fatalf("width = %v, want 8", got)
	}
	if _, err := r.Write(open, true); err != nil {
		t.Fatalf("write open: %v", err)
	}
	if !open.Bool() {
		t.Fatalf("open should read back true")
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("tool", String, Local, "pen"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := r.Register("tool", Bool, Local, false)
	if !errors.Is(err, ErrDuplicateCell) {
		t.Fatalf("expected ErrDuplicateCell, got %v", err)
	}
}

func TestTypeMismatchOnWrite(t *testing.T) {
	r := NewRegistry()
	width, _ := r.Register("stroke_width", Number, Local, 2)
	r.Seal()

	_, err := r.Write(width, "thick")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if got := width.Number(); got != 2 {
		t.Fatalf("failed write must not alter value; got %v", got)
	}
}

func TestTypeMismatchOnInitial(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("opacity", Number, Local, "1.0")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestSealClosesRegistration(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Register("tool", String, Local, "pen")
	r.Seal()

	if _, err := r.Register("late", Bool, Local, false); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
	if _, err := r.Write(c, "line"); err != nil {
		t.Fatalf("writes must stay open after seal: %v", err)
	}
}

func TestWriteReportsChanged(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Register("fill_enabled", Bool, Local, false)
	r.Seal()

	changed, err := r.Write(c, true)
	if err != nil || !changed {
		t.Fatalf("first write: changed=%v err=%v", changed, err)
	}
	changed, err = r.Write(c, true)
	if err != nil || changed {
		t.Fatalf("idempotent write must report unchanged: changed=%v err=%v", changed, err)
	}
}

func TestForeignHandleRejected(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	c, _ := a.Register("tool", String, Local, "pen")
	if _, err := b.Write(c, "line"); !errors.Is(err, ErrUnknownCell) {
		t.Fatalf("expected ErrUnknownCell, got %v", err)
	}
}

func TestLookupAndReset(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Register("opacity", Number, Shared, 1.0)
	r.Seal()

	got, err := r.Lookup("opacity")
	if err != nil || got != c {
		t.Fatalf("lookup returned %v, %v", got, err)
	}
	if _, err := r.Lookup("missing"); !errors.Is(err, ErrUnknownCell) {
		t.Fatalf("expected ErrUnknownCell, got %v", err)
	}

	_, _ = r.Write(c, 0.5)
	r.Reset()
	if c.Number() != 1.0 {
		t.Fatalf("reset should restore initial, got %v", c.Number())
	}
}

func TestIntegerLiteralsWidenToNumber(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Register("dash_length", Number, Local, 0)
	if _, err := r.Write(c, 6); err != nil {
		t.Fatalf("int write should widen: %v", err)
	}
	if c.Number() != 6.0 {
		t.Fatalf("widened value mismatch: %v", c.Number())
	}
}
