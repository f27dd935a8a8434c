package tui

import (
	"time"

	"blockview-cli/internal/mutate"
	"blockview-cli/internal/store"
)

// storeMover commits finished drags against the shared store: mutate, save,
// then best-effort event append. The event log must never block a move.
type storeMover struct {
	st    store.Store
	db    *store.DB
	docID string
}

func (m *storeMover) MoveBlocksToPosition(clientIDs []string, fromParentID, toParentID string, toIndex int) error {
	changed, payload, err := mutate.MoveBlocksToPosition(m.db, m.docID, clientIDs, fromParentID, toParentID, toIndex, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := m.st.Save(m.db); err != nil {
		return err
	}
	_ = m.st.AppendEvent("blocks.moved", m.docID, payload)
	return nil
}
