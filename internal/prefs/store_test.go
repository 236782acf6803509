package prefs

import (
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTest(t)

	if _, ok, err := s.Get("theme"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "light" {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
}

func TestSnapshotShapesPatch(t *testing.T) {
	s := openTest(t)

	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.SetNumber("stroke_width", 4); err != nil {
		t.Fatalf("SetNumber: %v", err)
	}
	if err := s.Set("unrelated", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	patch, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if v, ok := patch["theme"].(string); !ok || v != "dark" {
		t.Fatalf("theme = %#v", patch["theme"])
	}
	if v, ok := patch["stroke_width"].(float64); !ok || v != 4 {
		t.Fatalf("stroke_width = %#v", patch["stroke_width"])
	}
	if _, ok := patch["unrelated"]; ok {
		t.Fatal("snapshot leaked a non-toolbar key")
	}
	if _, ok := patch["opacity"]; ok {
		t.Fatal("absent key present in snapshot")
	}
}
