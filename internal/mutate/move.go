package mutate

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/store"
)

// MoveBlocksToPosition moves clientIDs (in order) under toParentID at toIndex
// within the given document. toParentID == "" targets the root level. This is
// the sole mutation entry point for committing a list-view drag.
//
// The operation is idempotent-safe: a block whose current parent no longer
// matches fromParentID is treated as already moved and skipped. Callers are
// responsible for saving db and appending the blocks.moved event.
func MoveBlocksToPosition(db *store.DB, documentID string, clientIDs []string, fromParentID, toParentID string, toIndex int, now time.Time) (bool, map[string]any, error) {
	documentID = strings.TrimSpace(documentID)
	fromParentID = strings.TrimSpace(fromParentID)
	toParentID = strings.TrimSpace(toParentID)
	if db == nil || documentID == "" || len(clientIDs) == 0 {
		return false, nil, nil
	}

	doc, ok := db.FindDocument(documentID)
	if !ok || doc.Archived {
		return false, nil, NotFoundError{Kind: "document", ID: documentID}
	}
	if err := blocktree.Validate(doc.Blocks); err != nil {
		return false, nil, err
	}
	if toIndex < 0 {
		return false, nil, errors.New("negative target index")
	}

	tree := doc.Blocks
	applied := []string{}
	for i, rawID := range clientIDs {
		id := strings.TrimSpace(rawID)
		if id == "" {
			continue
		}
		if blocktree.Find(tree, id) == nil {
			return false, nil, NotFoundError{Kind: "block", ID: id}
		}
		// A block cannot be nested under itself or its own subtree.
		if toParentID != "" {
			moved := blocktree.Find(tree, id)
			if moved.ClientID == toParentID || blocktree.Find(moved.InnerBlocks, toParentID) != nil {
				return false, nil, errors.New("cannot move a block into its own subtree")
			}
		}

		cur, _ := blocktree.ParentOf(tree, id)
		if cur != fromParentID {
			// Already applied (or moved elsewhere since): skip.
			continue
		}

		moved := *blocktree.Find(tree, id)
		next, _ := blocktree.Remove(tree, id)
		if toParentID != "" && blocktree.Find(next, toParentID) == nil {
			return false, nil, NotFoundError{Kind: "block", ID: toParentID}
		}
		tree = blocktree.InsertAt(next, toParentID, moved, toIndex+i)
		applied = append(applied, id)
	}

	if len(applied) == 0 {
		return false, nil, nil
	}
	if reflect.DeepEqual(tree, doc.Blocks) {
		// The blocks landed exactly where they already were.
		return false, nil, nil
	}

	doc.Blocks = tree
	doc.UpdatedAt = now
	return true, map[string]any{
		"moved":    applied,
		"from":     fromParentID,
		"to":       toParentID,
		"index":    toIndex,
		"document": doc.ID,
	}, nil
}
