package store

import (
	"strings"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
)

// FindBlock searches every document for clientID and returns the block plus
// the id of the document that owns it.
func (db *DB) FindBlock(clientID string) (*model.Block, string, bool) {
	clientID = strings.TrimSpace(clientID)
	if db == nil || clientID == "" {
		return nil, "", false
	}
	for i := range db.Documents {
		if b := blocktree.Find(db.Documents[i].Blocks, clientID); b != nil {
			return b, db.Documents[i].ID, true
		}
	}
	return nil, "", false
}

// BlockParents returns the ancestor chain of clientID, nearest parent first.
// Unknown ids yield an empty chain.
func (db *DB) BlockParents(clientID string) []string {
	clientID = strings.TrimSpace(clientID)
	if db == nil || clientID == "" {
		return nil
	}
	for i := range db.Documents {
		if chain, ok := parentChain(db.Documents[i].Blocks, nil, clientID); ok {
			// chain is root-first; reverse to nearest-first.
			out := make([]string, 0, len(chain))
			for j := len(chain) - 1; j >= 0; j-- {
				out = append(out, chain[j])
			}
			return out
		}
	}
	return nil
}

func parentChain(tree []model.Block, ancestors []string, clientID string) ([]string, bool) {
	for i := range tree {
		if tree[i].ClientID == clientID {
			return append([]string{}, ancestors...), true
		}
		if chain, ok := parentChain(tree[i].InnerBlocks, append(ancestors, tree[i].ClientID), clientID); ok {
			return chain, true
		}
	}
	return nil, false
}

// SelectBlock marks a block as the current selection. Unknown ids are a
// silent no-op so selection never fails mid-gesture.
func (db *DB) SelectBlock(clientID string) {
	clientID = strings.TrimSpace(clientID)
	if db == nil || clientID == "" {
		return
	}
	if _, _, ok := db.FindBlock(clientID); !ok {
		return
	}
	db.SelectedBlockID = clientID
}

// ToggleBlockHighlight sets or clears the transient hover highlight.
func (db *DB) ToggleBlockHighlight(clientID string, isHighlighted bool) {
	clientID = strings.TrimSpace(clientID)
	if db == nil || clientID == "" {
		return
	}
	if isHighlighted {
		db.HighlightedBlockID = clientID
		return
	}
	if db.HighlightedBlockID == clientID {
		db.HighlightedBlockID = ""
	}
}
