package tui

import (
	"strings"
	"time"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
	"blockview-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case settleDoneMsg:
		m.lv.finishSettle(msg.seq)
		m.reloadBlocks()
		return m, nil

	case tea.MouseMsg:
		if m.view == viewBlocks && m.modal == modalNone {
			cmd := m.handleMouse(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewDocuments:
			return m.updateDocumentsKeys(msg)
		case viewBlocks:
			return m.updateBlocksKeys(msg)
		}
	}

	return m, nil
}

func (m appModel) updateDocumentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is open, every key belongs to the list.
	if m.documentsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.documentsList, cmd = m.documentsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.persistTUIState()
		return m, tea.Quit
	case "enter":
		if it, ok := m.documentsList.SelectedItem().(documentItem); ok {
			m.openDocument(it.doc.ID)
		}
		return m, nil
	case "n":
		m.modal = modalNewDocument
		m.modalInput = newModalInput("Document title")
		return m, nil
	case "a":
		if it, ok := m.documentsList.SelectedItem().(documentItem); ok {
			m.modal = modalConfirmArchive
			m.modalDocID = it.doc.ID
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.documentsList, cmd = m.documentsList.Update(msg)
	return m, cmd
}

func (m appModel) updateBlocksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.persistTUIState()
		return m, tea.Quit
	case "esc", "backspace":
		m.persistTUIState()
		m.view = viewDocuments
		m.refreshDocuments()
		return m, nil
	case "tab", " ":
		if row, ok := m.selectedRow(); ok && row.hasChildren {
			m.lv.expanded.toggle(row.clientID)
			m.refreshBlockRows()
		}
		return m, nil
	case "n":
		m.modal = modalNewBlock
		m.modalInput = newModalInput("Block content (markdown)")
		return m, nil
	case "D":
		if _, ok := m.selectedRow(); ok {
			m.modal = modalConfirmDelete
		}
		return m, nil
	case "g":
		m.modal = modalJump
		m.modalInput = newModalInput("Block id or content")
		return m, nil
	case "alt+up":
		m.moveSelectedVertical(-1)
		return m, nil
	case "alt+down":
		m.moveSelectedVertical(1)
		return m, nil
	case "alt+right":
		m.indentSelected()
		return m, nil
	case "alt+left":
		m.outdentSelected()
		return m, nil
	}

	var cmd tea.Cmd
	m.blocksList, cmd = m.blocksList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.modal = modalNone
		m.modalDocID = ""
		return m, nil
	}

	switch m.modal {
	case modalConfirmArchive:
		switch msg.String() {
		case "y", "enter":
			m.archiveDocument(m.modalDocID)
			m.modal = modalNone
			m.modalDocID = ""
		case "n":
			m.modal = modalNone
			m.modalDocID = ""
		}
		return m, nil

	case modalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			m.deleteSelectedBlock()
			m.modal = modalNone
		case "n":
			m.modal = modalNone
		}
		return m, nil

	case modalNewBlock, modalNewDocument, modalJump:
		if msg.String() == "enter" {
			value := strings.TrimSpace(m.modalInput.Value())
			kind := m.modal
			m.modal = modalNone
			switch kind {
			case modalNewBlock:
				m.insertBlockAfterSelection(value)
			case modalNewDocument:
				m.createDocument(value)
			case modalJump:
				m.jumpTo(value)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.modalInput, cmd = m.modalInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.blocksList.CursorUp()
			m.refreshBlockRows()
			return nil
		case tea.MouseButtonWheelDown:
			m.blocksList.CursorDown()
			m.refreshBlockRows()
			return nil
		case tea.MouseButtonLeft:
			idx, ok := m.rowAt(msg.X, msg.Y)
			if !ok {
				return nil
			}
			m.blocksList.Select(idx)
			m.adapter.begin(msg.X, msg.Y)
			m.lv.startDrag(m.rows[idx].clientID)
			m.refreshBlockRows()
		}
		return nil

	case tea.MouseActionMotion:
		if m.adapter.active && m.lv.phase == dragActive {
			pos := rowIndexOf(m.rows, m.lv.draggingID)
			if pos < 0 {
				return nil
			}
			m.lv.moveItem(m.adapter.tick(msg.X, msg.Y, pos))
			m.refreshBlockRows()
			return nil
		}
		// Hover highlight is suppressed while a drag is in flight.
		if m.lv.phase == dragIdle {
			if idx, ok := m.rowAt(msg.X, msg.Y); ok {
				m.db.ToggleBlockHighlight(m.rows[idx].clientID, true)
			} else {
				m.db.ToggleBlockHighlight(m.db.HighlightedBlockID, false)
			}
			m.refreshBlockRows()
		}
		return nil

	case tea.MouseActionRelease:
		if !m.adapter.active {
			return nil
		}
		m.adapter.reset()
		settling, seq, err := m.lv.dropItem()
		if err != nil {
			m.status = err.Error()
			debugLog().Error("drag commit failed", "err", err)
		}
		m.reloadBlocks()
		if settling {
			return tea.Tick(settleDelay, func(time.Time) tea.Msg { return settleDoneMsg{seq: seq} })
		}
		return nil
	}
	return nil
}

// commitMove runs one keyboard-driven block move and keeps the moved block
// selected afterwards.
func (m *appModel) commitMove(clientID, fromParentID, toParentID string, toIndex int) {
	if m.mover == nil {
		return
	}
	if err := m.mover.MoveBlocksToPosition([]string{clientID}, fromParentID, toParentID, toIndex); err != nil {
		m.status = err.Error()
	}
	m.reloadBlocks()
	if idx := rowIndexOf(m.rows, clientID); idx >= 0 {
		m.blocksList.Select(idx)
	}
}

func (m *appModel) moveSelectedVertical(delta int) {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	sibs := siblingsOf(m.lv.tree(), row.parentID)
	idx := indexAmongSiblings(sibs, row.clientID)
	if idx < 0 {
		return
	}
	to := idx + delta
	if to < 0 || to >= len(sibs) {
		return
	}
	m.commitMove(row.clientID, row.parentID, row.parentID, to)
}

func (m *appModel) indentSelected() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	sibs := siblingsOf(m.lv.tree(), row.parentID)
	idx := indexAmongSiblings(sibs, row.clientID)
	if idx <= 0 {
		return
	}
	prev := sibs[idx-1]
	if !prev.Kind.AllowsChildren() {
		m.status = "cannot nest under a " + string(prev.Kind) + " block"
		return
	}
	m.lv.expanded.expand(prev.ClientID)
	m.commitMove(row.clientID, row.parentID, prev.ClientID, len(prev.InnerBlocks))
}

func (m *appModel) outdentSelected() {
	row, ok := m.selectedRow()
	if !ok || row.parentID == "" {
		return
	}
	tree := m.lv.tree()
	grand, _ := blocktree.ParentOf(tree, row.parentID)
	gsibs := siblingsOf(tree, grand)
	gidx := indexAmongSiblings(gsibs, row.parentID)
	if gidx < 0 {
		return
	}
	m.commitMove(row.clientID, row.parentID, grand, gidx+1)
}

func (m *appModel) insertBlockAfterSelection(content string) {
	if content == "" {
		return
	}
	parentID := ""
	index := len(m.lv.tree())
	if row, ok := m.selectedRow(); ok {
		sibs := siblingsOf(m.lv.tree(), row.parentID)
		if idx := indexAmongSiblings(sibs, row.clientID); idx >= 0 {
			parentID = row.parentID
			index = idx + 1
		}
	}
	id, err := mutate.InsertBlock(m.db, m.openDocumentID, parentID, index, model.BlockParagraph, content, time.Now())
	if err != nil {
		m.status = err.Error()
		return
	}
	_ = m.store.Save(m.db)
	_ = m.store.AppendEvent("blocks.inserted", m.openDocumentID, map[string]any{"block": id})
	m.db.SelectBlock(id)
	m.reloadBlocks()
	if idx := rowIndexOf(m.rows, id); idx >= 0 {
		m.blocksList.Select(idx)
	}
}

func (m *appModel) deleteSelectedBlock() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	changed, err := mutate.RemoveBlock(m.db, m.openDocumentID, row.clientID, time.Now())
	if err != nil {
		m.status = err.Error()
		return
	}
	if changed {
		_ = m.store.Save(m.db)
		_ = m.store.AppendEvent("blocks.removed", m.openDocumentID, map[string]any{"block": row.clientID})
	}
	m.reloadBlocks()
}

func (m *appModel) createDocument(title string) {
	if title == "" {
		return
	}
	id, err := mutate.CreateDocument(m.db, title, time.Now())
	if err != nil {
		m.status = err.Error()
		return
	}
	_ = m.store.Save(m.db)
	_ = m.store.AppendEvent("documents.created", id, map[string]any{"title": title})
	m.refreshDocuments()
	selectDocumentByID(&m.documentsList, id)
}

func (m *appModel) archiveDocument(id string) {
	changed, err := mutate.SetDocumentArchived(m.db, id, true, time.Now())
	if err != nil {
		m.status = err.Error()
		return
	}
	if changed {
		_ = m.store.Save(m.db)
		_ = m.store.AppendEvent("documents.archived", id, nil)
	}
	m.refreshDocuments()
}

// jumpTo selects a block by exact client id or first content match, expanding
// every collapsed ancestor so the row is actually visible.
func (m *appModel) jumpTo(query string) {
	if query == "" {
		return
	}
	doc, ok := m.db.FindDocument(m.openDocumentID)
	if !ok {
		return
	}

	target := ""
	if blocktree.Find(doc.Blocks, query) != nil {
		target = query
	} else {
		target = findBlockByContent(doc.Blocks, strings.ToLower(query))
	}
	if target == "" {
		m.status = "no block matches " + strings.TrimSpace(query)
		return
	}

	for _, ancestor := range m.db.BlockParents(target) {
		m.lv.expanded.expand(ancestor)
	}
	m.db.SelectBlock(target)
	_ = m.store.Save(m.db)
	m.refreshBlockRows()
	if idx := rowIndexOf(m.rows, target); idx >= 0 {
		m.blocksList.Select(idx)
	}
}

func findBlockByContent(tree []model.Block, lowered string) string {
	for i := range tree {
		if strings.Contains(strings.ToLower(tree[i].Content), lowered) {
			return tree[i].ClientID
		}
		if id := findBlockByContent(tree[i].InnerBlocks, lowered); id != "" {
			return id
		}
	}
	return ""
}
