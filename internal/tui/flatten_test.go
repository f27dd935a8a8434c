package tui

import (
	"testing"

	"blockview-cli/internal/model"
)

func b(id string, kind model.BlockKind, children ...model.Block) model.Block {
	return model.Block{ClientID: id, Kind: kind, InnerBlocks: children}
}

func flattenFixture() []model.Block {
	return []model.Block{
		b("block-a", model.BlockGroup,
			b("block-a1", model.BlockParagraph),
			b("block-a2", model.BlockList,
				b("block-a2x", model.BlockListItem),
			),
		),
		b("block-b", model.BlockParagraph),
	}
}

func TestFlattenBlocks_FullyExpanded(t *testing.T) {
	rows := flattenBlocks(flattenFixture(), expansionState{}, "")
	want := []string{"block-a", "block-a1", "block-a2", "block-a2x", "block-b"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, id := range want {
		if rows[i].clientID != id {
			t.Fatalf("row %d: expected %s, got %s", i, id, rows[i].clientID)
		}
	}
	if rows[0].depth != 0 || rows[1].depth != 1 || rows[3].depth != 2 {
		t.Fatalf("unexpected depths: %+v", rows)
	}
	if rows[1].parentID != "block-a" || rows[3].parentID != "block-a2" || rows[4].parentID != "" {
		t.Fatalf("unexpected parents: %+v", rows)
	}
}

func TestFlattenBlocks_CollapsedHidesSubtree(t *testing.T) {
	e := expansionState{}
	e.collapse("block-a2")
	rows := flattenBlocks(flattenFixture(), e, "")
	if got := len(rows); got != 4 {
		t.Fatalf("expected 4 rows with block-a2 collapsed, got %d: %+v", got, rows)
	}
	if idx := rowIndexOf(rows, "block-a2x"); idx != -1 {
		t.Fatalf("collapsed child must not appear, found at %d", idx)
	}
	if idx := rowIndexOf(rows, "block-a2"); idx == -1 || !rows[idx].collapsed {
		t.Fatalf("expected block-a2 marked collapsed")
	}
}

func TestFlattenBlocks_DropRoles(t *testing.T) {
	rows := flattenBlocks(flattenFixture(), expansionState{}, "block-a1")
	for _, r := range rows {
		if r.clientID == "block-a1" {
			if r.dropSibling || r.dropContainer {
				t.Fatalf("dragged row must not be a drop target: %+v", r)
			}
			continue
		}
		if !r.dropSibling {
			t.Fatalf("non-dragged rows are sibling targets: %+v", r)
		}
		wantContainer := r.kind.AllowsChildren()
		if r.dropContainer != wantContainer {
			t.Fatalf("container role mismatch for %s (%s): got %v", r.clientID, r.kind, r.dropContainer)
		}
	}
}

func TestRefreshRows_PopulatesRegistry(t *testing.T) {
	lv := newListView(flattenFixture(), nil)
	rows := lv.refreshRows()
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, r := range rows {
		e, ok := lv.registry.at(i)
		if !ok || e.clientID != r.clientID || e.parentID != r.parentID {
			t.Fatalf("registry slot %d mismatch: %+v vs row %+v", i, e, r)
		}
	}
	if lv.registry.maxPosition() != 4 {
		t.Fatalf("expected max position 4, got %d", lv.registry.maxPosition())
	}
}
