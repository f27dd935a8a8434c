package guide

import (
	"strings"
	"testing"
)

func TestTopicsAreSortedAndNonEmpty(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1] >= topics[i] {
			t.Fatalf("expected sorted topics; got %v", topics)
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get("drag-and-drop")
	if !ok || !strings.Contains(body, "re-parent") {
		t.Fatalf("expected drag-and-drop topic; ok=%v", ok)
	}
	if _, ok := Get("  Storage "); !ok {
		t.Fatalf("expected topic lookup to trim and lowercase")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to miss")
	}
}
