package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blockview-cli/internal/model"
)

func testDoc(id, title string) model.Document {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	return model.Document{
		ID:    id,
		Title: title,
		Blocks: []model.Block{
			{ClientID: "block-a", Kind: model.BlockHeading, Content: "# Hello", CreatedAt: now, UpdatedAt: now},
			{ClientID: "block-b", Kind: model.BlockGroup, CreatedAt: now, UpdatedAt: now, InnerBlocks: []model.Block{
				{ClientID: "block-b1", Kind: model.BlockParagraph, Content: "nested", CreatedAt: now, UpdatedAt: now},
			}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteState_RoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	in := &DB{
		Version:           1,
		CurrentDocumentID: "doc-one",
		SelectedBlockID:   "block-b1",
		Documents:         []model.Document{testDoc("doc-one", "First"), testDoc("doc-two", "Second")},
	}
	if err := s.SaveSQLite(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadSQLite(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.CurrentDocumentID != "doc-one" || out.SelectedBlockID != "block-b1" {
		t.Fatalf("meta mismatch: %+v", out)
	}
	if len(out.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out.Documents))
	}
	b, docID, ok := out.FindBlock("block-b1")
	if !ok || b == nil || b.Content != "nested" {
		t.Fatalf("expected nested block to round-trip, got ok=%v b=%+v", ok, b)
	}
	if docID != "doc-one" {
		t.Fatalf("expected doc-one owner, got %q", docID)
	}
}

func TestSQLiteState_ReplaceAll(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	if err := s.SaveSQLite(ctx, &DB{Version: 1, Documents: []model.Document{testDoc("doc-one", "First")}}); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if err := s.SaveSQLite(ctx, &DB{Version: 1, Documents: []model.Document{testDoc("doc-two", "Second")}}); err != nil {
		t.Fatalf("save 2: %v", err)
	}
	out, err := s.LoadSQLite(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Documents) != 1 || out.Documents[0].ID != "doc-two" {
		t.Fatalf("expected replace-all to keep only doc-two, got %+v", out.Documents)
	}
}

func TestLoadSQLite_ImportsLegacyDBJSONOnce(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	legacy := DB{Version: 1, Documents: []model.Document{testDoc("doc-legacy", "Old")}}
	raw, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "db.json"), raw, 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Documents) != 1 || out.Documents[0].ID != "doc-legacy" {
		t.Fatalf("expected legacy import, got %+v", out.Documents)
	}

	// Mutate SQLite state; a second load must not re-import db.json over it.
	out.Documents[0].Title = "Renamed"
	if err := s.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Documents[0].Title != "Renamed" {
		t.Fatalf("expected sqlite to win over legacy json, got %q", again.Documents[0].Title)
	}
}
