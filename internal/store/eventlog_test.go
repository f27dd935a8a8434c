package store

import (
	"os"
	"testing"
)

func TestEventLog_AppendAndTail(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	if err := s.AppendEvent("document.created", "doc-one", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("blocks.moved", "block-a", map[string]any{"to": "", "index": 2}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("blocks.moved", "block-b", nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := s.ReadEvents()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 3 || all[0].Type != "document.created" {
		t.Fatalf("unexpected events: %+v", all)
	}

	tail, err := s.ReadEventsTail(2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 2 || tail[0].EntityID != "block-a" || tail[1].EntityID != "block-b" {
		t.Fatalf("unexpected tail: %+v", tail)
	}
}

func TestEventLog_SkipsBlankAndMalformedLines(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent("document.created", "doc-one", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(s.eventsPath(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("\n{broken\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = f.Close()

	all, err := s.ReadEvents()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected only valid events, got %+v", all)
	}
}

func TestEventLog_EmptyTypeOrEntityIsNoOp(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent("", "doc-one", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("document.created", "  ", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	all, err := s.ReadEvents()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty log, got %+v", all)
	}
}
