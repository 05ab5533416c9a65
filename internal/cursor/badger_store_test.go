package cursor

import (
	"path/filepath"
	"testing"
)

func TestBadgerStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	s, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("fresh store should report no cursor")
	}

	c := Cursor{LastLoadDate: "2023-03-15", UpdatedAt: 42}
	if err := s.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || got != c {
		t.Fatalf("round trip failed: ok=%v got=%+v", ok, got)
	}
}
