package tui

import (
	"testing"
	"time"

	"blockview-cli/internal/model"
	"blockview-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testAppModel(t *testing.T) (appModel, store.Store) {
	t.Helper()
	dir := t.TempDir()
	s := store.Store{Dir: dir}
	now := time.Now()
	db := &store.DB{
		Version: 1,
		Documents: []model.Document{{
			ID:    "doc-1",
			Title: "Notes",
			Blocks: []model.Block{
				b("block-a", model.BlockParagraph),
				b("block-b", model.BlockParagraph),
				b("block-c", model.BlockParagraph),
			},
			CreatedAt: now,
			UpdatedAt: now,
		}},
		CurrentDocumentID: "doc-1",
	}
	if err := s.Save(db); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := newAppModel(dir, db)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(appModel)
	m.openDocument("doc-1")
	return m, s
}

func appRootOrder(m appModel) []string {
	out := []string{}
	for _, r := range m.rows {
		if r.parentID == "" {
			out = append(out, r.clientID)
		}
	}
	return out
}

func TestApp_OpenDocumentShowsRows(t *testing.T) {
	m, _ := testAppModel(t)
	if m.view != viewBlocks {
		t.Fatalf("expected blocks view after open")
	}
	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.rows))
	}
}

func TestApp_MouseDragReorderCommits(t *testing.T) {
	m, s := testAppModel(t)

	// Rows render at y = listTopLines + index. Grab block-b (index 1) and
	// drag it two terminal rows down, past block-c.
	press := tea.MouseMsg{X: 5, Y: listTopLines + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(appModel)
	if m.lv.draggingID != "block-b" {
		t.Fatalf("expected drag of block-b, got %q", m.lv.draggingID)
	}

	motion := tea.MouseMsg{X: 5, Y: listTopLines + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	next, _ = m.Update(motion)
	m = next.(appModel)

	release := tea.MouseMsg{X: 5, Y: listTopLines + 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, cmd := m.Update(release)
	m = next.(appModel)
	if cmd == nil {
		t.Fatalf("expected a settle timer after a committed drop")
	}
	if m.lv.phase != dragSettling {
		t.Fatalf("expected settling phase, got %d", m.lv.phase)
	}

	next, _ = m.Update(settleDoneMsg{seq: m.lv.settleSeq})
	m = next.(appModel)
	if m.lv.phase != dragIdle {
		t.Fatalf("expected idle after settle")
	}
	if got := appRootOrder(m); got[0] != "block-a" || got[1] != "block-c" || got[2] != "block-b" {
		t.Fatalf("expected a,c,b after drag, got %v", got)
	}

	// The move must be durable, not just visual.
	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	doc, _ := reloaded.FindDocument("doc-1")
	if doc.Blocks[2].ClientID != "block-b" {
		t.Fatalf("expected persisted order to end with block-b, got %v", doc.Blocks)
	}
	evs, err := s.ReadEvents()
	if err != nil || len(evs) == 0 {
		t.Fatalf("expected a blocks.moved event, err=%v", err)
	}
	if evs[len(evs)-1].Type != "blocks.moved" {
		t.Fatalf("expected blocks.moved, got %q", evs[len(evs)-1].Type)
	}
}

func TestApp_TrivialClickDoesNotMutate(t *testing.T) {
	m, s := testAppModel(t)

	press := tea.MouseMsg{X: 5, Y: listTopLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(appModel)
	release := tea.MouseMsg{X: 5, Y: listTopLines, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, cmd := m.Update(release)
	m = next.(appModel)

	if cmd != nil {
		t.Fatalf("expected no settle timer for a click")
	}
	if m.lv.phase != dragIdle {
		t.Fatalf("expected idle after click")
	}
	evs, _ := s.ReadEvents()
	if len(evs) != 0 {
		t.Fatalf("expected no events for a click, got %v", evs)
	}
}

func TestApp_HoverHighlightOnlyWhenIdle(t *testing.T) {
	m, _ := testAppModel(t)

	hover := tea.MouseMsg{X: 5, Y: listTopLines + 1, Action: tea.MouseActionMotion}
	next, _ := m.Update(hover)
	m = next.(appModel)
	if m.db.HighlightedBlockID != "block-b" {
		t.Fatalf("expected hover highlight on block-b, got %q", m.db.HighlightedBlockID)
	}

	press := tea.MouseMsg{X: 5, Y: listTopLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ = m.Update(press)
	m = next.(appModel)
	before := m.db.HighlightedBlockID
	next, _ = m.Update(tea.MouseMsg{X: 5, Y: listTopLines + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = next.(appModel)
	if m.db.HighlightedBlockID != before {
		t.Fatalf("highlight must not change mid-drag")
	}
}

func TestApp_KeyboardMoveDown(t *testing.T) {
	m, _ := testAppModel(t)
	m.blocksList.Select(0)

	m.moveSelectedVertical(1)
	if got := appRootOrder(m); got[0] != "block-b" || got[1] != "block-a" {
		t.Fatalf("expected b,a,c after alt+down, got %v", got)
	}
}

func TestApp_FoldKeyCollapsesSubtree(t *testing.T) {
	m, _ := testAppModel(t)
	// Give block-a a child so it can fold.
	doc, _ := m.db.FindDocument("doc-1")
	doc.Blocks[0].Kind = model.BlockGroup
	doc.Blocks[0].InnerBlocks = []model.Block{b("block-a1", model.BlockParagraph)}
	m.reloadBlocks()
	if len(m.rows) != 4 {
		t.Fatalf("expected 4 rows with child, got %d", len(m.rows))
	}

	m.blocksList.Select(0)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(appModel)
	if len(m.rows) != 3 {
		t.Fatalf("expected child hidden after fold, got %d rows", len(m.rows))
	}
}
