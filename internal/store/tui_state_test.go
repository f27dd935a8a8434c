package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTUIState_RoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st := &TUIState{
		OpenDocumentID: "doc-one",
		Expanded:       map[string]bool{"block-a": false, "block-b": true},
	}
	if err := s.SaveTUIState(st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Version != 1 || got.OpenDocumentID != "doc-one" {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.Expanded["block-a"] || !got.Expanded["block-b"] {
		t.Fatalf("expansion map mismatch: %+v", got.Expanded)
	}
}

func TestTUIState_MissingAndCorruptFilesAreEmptyState(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if got.Version != 1 || got.OpenDocumentID != "" {
		t.Fatalf("expected empty default state, got %+v", got)
	}

	if err := os.WriteFile(filepath.Join(s.Dir, tuiStateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = s.LoadTUIState()
	if err != nil {
		t.Fatalf("load corrupt: %v", err)
	}
	if got.Version != 1 || len(got.Expanded) != 0 {
		t.Fatalf("expected corrupt file treated as missing, got %+v", got)
	}
}
