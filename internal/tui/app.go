package tui

import (
	"fmt"
	"strings"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
	"blockview-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewDocuments view = iota
	viewBlocks
)

// settleDoneMsg ends the post-drop settle window. The sequence ties it to a
// specific drop so a timer from an abandoned drag can't end a newer one.
type settleDoneMsg struct{ seq int }

// docListTopLines is how many screen rows sit above the first block row:
// the header line plus the blank separator.
const listTopLines = 2

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB

	width  int
	height int

	view view

	documentsList list.Model
	blocksList    list.Model

	openDocumentID string
	lv             listView
	rows           []blockRow
	mover          *storeMover
	adapter        dragAdapter

	modal      modalKind
	modalInput textinput.Model
	modalDocID string // document targeted by a confirm modal

	status string
}

func newAppModel(dir string, db *store.DB) appModel {
	s := store.Store{Dir: dir}
	m := appModel{
		dir:   dir,
		store: s,
		db:    db,
		view:  viewDocuments,
	}

	m.documentsList = newList([]list.Item{})
	m.blocksList = list.New([]list.Item{}, newBlockRowDelegate(), 0, 0)
	m.blocksList.SetShowTitle(false)
	m.blocksList.SetShowHelp(false)
	m.blocksList.SetShowStatusBar(false)
	m.blocksList.SetShowPagination(false)
	m.blocksList.SetFilteringEnabled(false)
	m.blocksList.KeyMap.Quit.SetKeys("ctrl+c")

	m.refreshDocuments()
	m.restoreTUIState()
	return m
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("document", "documents")
	// ESC means back/cancel here, never quit.
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}

func (m appModel) Init() tea.Cmd { return nil }

// restoreTUIState reopens the document and expansion map from the previous
// session. Everything here is best effort.
func (m *appModel) restoreTUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if st.OpenDocumentID != "" {
		if _, ok := m.db.FindDocument(st.OpenDocumentID); ok {
			m.openDocument(st.OpenDocumentID)
			if len(st.Expanded) > 0 {
				m.lv.expanded = expansionState(st.Expanded)
				m.refreshBlockRows()
			}
		}
	}
}

func (m *appModel) persistTUIState() {
	st := &store.TUIState{
		OpenDocumentID: m.openDocumentID,
		Expanded:       map[string]bool{},
	}
	if m.view != viewBlocks {
		st.OpenDocumentID = ""
	}
	for id, v := range m.lv.expanded {
		st.Expanded[id] = v
	}
	_ = m.store.SaveTUIState(st)
}

func (m *appModel) refreshDocuments() {
	curID := ""
	if it, ok := m.documentsList.SelectedItem().(documentItem); ok {
		curID = it.doc.ID
	}
	var items []list.Item
	for _, d := range m.db.ActiveDocuments() {
		items = append(items, documentItem{doc: d, current: d.ID == m.db.CurrentDocumentID})
	}
	m.documentsList.SetItems(items)
	if curID != "" {
		selectDocumentByID(&m.documentsList, curID)
	}
}

func (m *appModel) openDocument(id string) {
	doc, ok := m.db.FindDocument(id)
	if !ok {
		return
	}
	m.openDocumentID = id
	m.db.CurrentDocumentID = id
	_ = m.store.Save(m.db)

	m.mover = &storeMover{st: m.store, db: m.db, docID: id}
	m.lv = newListView(doc.Blocks, m.mover)
	m.view = viewBlocks
	m.refreshBlockRows()
	if idx := rowIndexOf(m.rows, m.db.SelectedBlockID); idx >= 0 {
		m.blocksList.Select(idx)
	}
}

// reloadBlocks re-syncs the list view from the authoritative document tree
// and rebuilds the rows.
func (m *appModel) reloadBlocks() {
	doc, ok := m.db.FindDocument(m.openDocumentID)
	if !ok {
		m.view = viewDocuments
		m.refreshDocuments()
		return
	}
	m.lv.syncBlocks(doc.Blocks)
	m.refreshBlockRows()
}

func (m *appModel) refreshBlockRows() {
	curID := ""
	if it, ok := m.blocksList.SelectedItem().(blockRowItem); ok {
		curID = it.row.clientID
	}
	m.rows = m.lv.refreshRows()

	highlightID := m.db.HighlightedBlockID
	if m.lv.phase != dragIdle {
		highlightID = ""
	}
	var items []list.Item
	for _, row := range m.rows {
		items = append(items, blockRowItem{
			row:         row,
			dragging:    row.clientID == m.lv.draggingID,
			highlighted: row.clientID == highlightID,
		})
	}
	m.blocksList.SetItems(items)
	if curID != "" {
		if idx := rowIndexOf(m.rows, curID); idx >= 0 {
			m.blocksList.Select(idx)
		}
	}
}

func (m *appModel) selectedRow() (blockRow, bool) {
	it, ok := m.blocksList.SelectedItem().(blockRowItem)
	if !ok {
		return blockRow{}, false
	}
	return it.row, true
}

// rowAt maps a terminal coordinate to a flattened row index, accounting for
// the header above the list and the list's current page.
func (m *appModel) rowAt(x, y int) (int, bool) {
	if x < 0 || x >= m.blocksList.Width() {
		return 0, false
	}
	idx := y - listTopLines
	if idx < 0 {
		return 0, false
	}
	idx += m.blocksList.Paginator.Page * m.blocksList.Paginator.PerPage
	if idx >= len(m.rows) {
		return 0, false
	}
	return idx, true
}

// siblingsOf returns the ordered child slice under parentID ("" = roots).
func siblingsOf(tree []model.Block, parentID string) []model.Block {
	if parentID == "" {
		return tree
	}
	parent := blocktree.Find(tree, parentID)
	if parent == nil {
		return nil
	}
	return parent.InnerBlocks
}

func indexAmongSiblings(siblings []model.Block, clientID string) int {
	for i := range siblings {
		if siblings[i].ClientID == clientID {
			return i
		}
	}
	return -1
}

func (m *appModel) resizeLists() {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.documentsList.SetSize(w, h)

	leftW := w * 3 / 5
	if leftW < 30 {
		leftW = 30
	}
	m.blocksList.SetSize(leftW, h)
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.headerLine())

	var body string
	switch m.view {
	case viewDocuments:
		body = m.documentsList.View()
	case viewBlocks:
		body = m.viewBlocks()
	}

	if m.modal != modalNone {
		body = m.viewModal()
	}

	return strings.Join([]string{header, body, m.footerLine()}, "\n\n")
}

func (m appModel) headerLine() string {
	switch m.view {
	case viewBlocks:
		title := ""
		if doc, ok := m.db.FindDocument(m.openDocumentID); ok {
			title = doc.Title
		}
		return fmt.Sprintf("blockview  %s", title)
	default:
		return "blockview  Documents"
	}
}

func (m appModel) footerLine() string {
	if m.status != "" {
		return lipgloss.NewStyle().Foreground(colorErrorFg).Render(m.status)
	}
	help := "enter: open  n: new  a: archive  q: quit"
	if m.view == viewBlocks {
		help = "tab: fold  n: new  D: delete  g: jump  alt+arrows: move  drag: reorder  esc: back  q: quit"
	}
	return styleMuted().Render(help)
}

func (m appModel) viewBlocks() string {
	bodyHeight := m.height - 4
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	leftW := m.blocksList.Width()
	rightW := m.width - leftW - 2
	if rightW < 24 {
		rightW = 24
	}

	left := normalizePane(m.blocksList.View(), leftW, bodyHeight)

	preview := "No block selected."
	if row, ok := m.selectedRow(); ok {
		preview = renderBlockPreview(row, rightW)
	}
	right := normalizePane(preview, rightW, bodyHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderBlockPreview shows the selected block's body. Code blocks are fenced
// so glamour renders them as a code block instead of prose.
func renderBlockPreview(row blockRow, width int) string {
	md := row.content
	if row.kind == model.BlockCode {
		md = "```\n" + strings.TrimRight(md, "\n") + "\n```"
	}
	out := renderMarkdown(md, width)
	if out == "" {
		return styleMuted().Render("(empty block)")
	}
	return out
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalNewBlock:
		return renderInputModal(m.width, "New block", m.modalInput)
	case modalNewDocument:
		return renderInputModal(m.width, "New document", m.modalInput)
	case modalJump:
		return renderInputModal(m.width, "Jump to block", m.modalInput)
	case modalConfirmArchive:
		title := m.modalDocID
		if doc, ok := m.db.FindDocument(m.modalDocID); ok {
			title = doc.Title
		}
		return renderConfirmModal(m.width, "Archive document", fmt.Sprintf("Archive %q?", title))
	case modalConfirmDelete:
		label := ""
		if row, ok := m.selectedRow(); ok {
			label = strings.TrimSpace(firstLine(row.content))
		}
		return renderConfirmModal(m.width, "Delete block", fmt.Sprintf("Delete %q and its children?", label))
	}
	return ""
}

func selectDocumentByID(l *list.Model, id string) {
	for i, item := range l.Items() {
		if it, ok := item.(documentItem); ok && it.doc.ID == id {
			l.Select(i)
			return
		}
	}
}
