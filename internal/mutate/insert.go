package mutate

import (
	"strings"
	"time"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
	"blockview-cli/internal/store"
)

// InsertBlock creates a new block under parentID ("" = root level) at index
// and returns its client id. Callers are responsible for saving db and
// appending the blocks.created event.
func InsertBlock(db *store.DB, documentID, parentID string, index int, kind model.BlockKind, content string, now time.Time) (string, error) {
	documentID = strings.TrimSpace(documentID)
	parentID = strings.TrimSpace(parentID)
	if db == nil || documentID == "" {
		return "", nil
	}

	doc, ok := db.FindDocument(documentID)
	if !ok || doc.Archived {
		return "", NotFoundError{Kind: "document", ID: documentID}
	}
	if parentID != "" && blocktree.Find(doc.Blocks, parentID) == nil {
		return "", NotFoundError{Kind: "block", ID: parentID}
	}
	if kind == "" {
		kind = model.BlockParagraph
	}

	id, err := store.NewBlockID(db)
	if err != nil {
		return "", err
	}
	b := model.Block{
		ClientID:  id,
		Kind:      kind,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Blocks = blocktree.InsertAt(doc.Blocks, parentID, b, index)
	doc.UpdatedAt = now
	return id, nil
}

// RemoveBlock removes a block (and its subtree) from its document. Unknown
// ids are a silent no-op so the UI can archive without pre-checking.
func RemoveBlock(db *store.DB, documentID, clientID string, now time.Time) (bool, error) {
	documentID = strings.TrimSpace(documentID)
	clientID = strings.TrimSpace(clientID)
	if db == nil || documentID == "" || clientID == "" {
		return false, nil
	}
	doc, ok := db.FindDocument(documentID)
	if !ok {
		return false, NotFoundError{Kind: "document", ID: documentID}
	}
	if blocktree.Find(doc.Blocks, clientID) == nil {
		return false, nil
	}
	next, _ := blocktree.Remove(doc.Blocks, clientID)
	doc.Blocks = next
	doc.UpdatedAt = now
	if db.SelectedBlockID == clientID {
		db.SelectedBlockID = ""
	}
	return true, nil
}
