// Package blocktree implements pure operations over a document's nested block
// tree. Every operation returns a newly built tree and leaves its input
// untouched, so callers can keep an authoritative tree stable while rendering
// a transient working copy.
package blocktree

import (
	"errors"
	"fmt"
	"strings"

	"blockview-cli/internal/model"
)

// Remove returns the tree without the first block whose ClientID matches
// targetID, plus the parent id of the removed block ("" when it was a root).
// An unknown id is a silent no-op: the returned tree is equal to the input and
// the parent id is empty. Traversal is depth-first, left-to-right.
func Remove(tree []model.Block, targetID string) ([]model.Block, string) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return Clone(tree), ""
	}
	out, parent, _ := removeUnder(tree, "", targetID)
	return out, parent
}

func removeUnder(tree []model.Block, parentID, targetID string) ([]model.Block, string, bool) {
	if len(tree) == 0 {
		return nil, "", false
	}
	out := make([]model.Block, 0, len(tree))
	removedParent := ""
	removed := false
	for _, b := range tree {
		if !removed && b.ClientID == targetID {
			removed = true
			removedParent = parentID
			continue
		}
		nb := b
		if !removed {
			inner, p, ok := removeUnder(b.InnerBlocks, b.ClientID, targetID)
			nb.InnerBlocks = inner
			if ok {
				removed = true
				removedParent = p
			}
		} else {
			nb.InnerBlocks = Clone(b.InnerBlocks)
		}
		out = append(out, nb)
	}
	return out, removedParent, removed
}

// InsertAdjacent inserts item immediately before or after the block whose
// ClientID matches anchorID, within the anchor's sibling sequence. It returns
// the new tree, the anchor's parent id ("" when the anchor is a root), and the
// 0-based index of item among its new siblings. When the anchor is not found
// the input tree is returned unchanged with parent "" and index -1.
func InsertAdjacent(tree []model.Block, anchorID string, item model.Block, after bool) ([]model.Block, string, int) {
	anchorID = strings.TrimSpace(anchorID)
	if anchorID == "" {
		return Clone(tree), "", -1
	}
	out, parent, idx, _ := insertAdjacentUnder(tree, "", anchorID, item, after)
	return out, parent, idx
}

func insertAdjacentUnder(tree []model.Block, parentID, anchorID string, item model.Block, after bool) ([]model.Block, string, int, bool) {
	if len(tree) == 0 {
		return nil, "", -1, false
	}
	out := make([]model.Block, 0, len(tree)+1)
	targetParent := ""
	targetIndex := -1
	inserted := false
	for _, b := range tree {
		if !inserted && b.ClientID == anchorID {
			inserted = true
			targetParent = parentID
			if after {
				out = append(out, cloneBlock(b), cloneBlock(item))
				targetIndex = len(out) - 1
			} else {
				targetIndex = len(out)
				out = append(out, cloneBlock(item), cloneBlock(b))
			}
			continue
		}
		nb := b
		if !inserted {
			inner, p, idx, ok := insertAdjacentUnder(b.InnerBlocks, b.ClientID, anchorID, item, after)
			nb.InnerBlocks = inner
			if ok {
				inserted = true
				targetParent = p
				targetIndex = idx
			}
		} else {
			nb.InnerBlocks = Clone(b.InnerBlocks)
		}
		out = append(out, nb)
	}
	return out, targetParent, targetIndex, inserted
}

// InsertFirstChild prepends item to the InnerBlocks of the block whose
// ClientID matches parentID. Unknown parent ids are a silent no-op.
func InsertFirstChild(tree []model.Block, parentID string, item model.Block) []model.Block {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return Clone(tree)
	}
	out, _ := insertFirstChildUnder(tree, parentID, item)
	return out
}

func insertFirstChildUnder(tree []model.Block, parentID string, item model.Block) ([]model.Block, bool) {
	if len(tree) == 0 {
		return nil, false
	}
	out := make([]model.Block, 0, len(tree))
	inserted := false
	for _, b := range tree {
		nb := b
		if !inserted && b.ClientID == parentID {
			inserted = true
			inner := make([]model.Block, 0, len(b.InnerBlocks)+1)
			inner = append(inner, cloneBlock(item))
			inner = append(inner, Clone(b.InnerBlocks)...)
			nb.InnerBlocks = inner
		} else if !inserted {
			inner, ok := insertFirstChildUnder(b.InnerBlocks, parentID, item)
			nb.InnerBlocks = inner
			inserted = ok
		} else {
			nb.InnerBlocks = Clone(b.InnerBlocks)
		}
		out = append(out, nb)
	}
	return out, inserted
}

// InsertAt inserts item at index among the children of parentID ("" targets
// the root level). The index is clamped to the valid range. Unknown parent ids
// are a silent no-op.
func InsertAt(tree []model.Block, parentID string, item model.Block, index int) []model.Block {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return insertIntoSiblings(tree, item, index)
	}
	out, _ := insertAtUnder(tree, parentID, item, index)
	return out
}

func insertAtUnder(tree []model.Block, parentID string, item model.Block, index int) ([]model.Block, bool) {
	if len(tree) == 0 {
		return nil, false
	}
	out := make([]model.Block, 0, len(tree))
	inserted := false
	for _, b := range tree {
		nb := b
		if !inserted && b.ClientID == parentID {
			inserted = true
			nb.InnerBlocks = insertIntoSiblings(b.InnerBlocks, item, index)
		} else if !inserted {
			inner, ok := insertAtUnder(b.InnerBlocks, parentID, item, index)
			nb.InnerBlocks = inner
			inserted = ok
		} else {
			nb.InnerBlocks = Clone(b.InnerBlocks)
		}
		out = append(out, nb)
	}
	return out, inserted
}

func insertIntoSiblings(sibs []model.Block, item model.Block, index int) []model.Block {
	if index < 0 {
		index = 0
	}
	if index > len(sibs) {
		index = len(sibs)
	}
	out := make([]model.Block, 0, len(sibs)+1)
	out = append(out, Clone(sibs[:index])...)
	out = append(out, cloneBlock(item))
	out = append(out, Clone(sibs[index:])...)
	return out
}

// Find returns the first block matching clientID, or nil.
func Find(tree []model.Block, clientID string) *model.Block {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil
	}
	for i := range tree {
		if tree[i].ClientID == clientID {
			return &tree[i]
		}
		if found := Find(tree[i].InnerBlocks, clientID); found != nil {
			return found
		}
	}
	return nil
}

// ParentOf returns the parent id of clientID ("" for roots) and whether the
// block exists in the tree.
func ParentOf(tree []model.Block, clientID string) (string, bool) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "", false
	}
	return parentOfUnder(tree, "", clientID)
}

func parentOfUnder(tree []model.Block, parentID, clientID string) (string, bool) {
	for i := range tree {
		if tree[i].ClientID == clientID {
			return parentID, true
		}
		if p, ok := parentOfUnder(tree[i].InnerBlocks, tree[i].ClientID, clientID); ok {
			return p, true
		}
	}
	return "", false
}

// Clone deep-copies a block sequence.
func Clone(tree []model.Block) []model.Block {
	if tree == nil {
		return nil
	}
	out := make([]model.Block, 0, len(tree))
	for _, b := range tree {
		out = append(out, cloneBlock(b))
	}
	return out
}

func cloneBlock(b model.Block) model.Block {
	nb := b
	nb.InnerBlocks = Clone(b.InnerBlocks)
	return nb
}

// IDs returns every ClientID in depth-first, left-to-right order. Duplicates
// are preserved so callers can detect them.
func IDs(tree []model.Block) []string {
	var out []string
	var walk func(tree []model.Block)
	walk = func(tree []model.Block) {
		for _, b := range tree {
			out = append(out, b.ClientID)
			walk(b.InnerBlocks)
		}
	}
	walk(tree)
	return out
}

// Validate rejects trees with blank or duplicate client ids. Duplicate ids
// would make lookup-by-id ambiguous, so they are treated as data corruption
// rather than something the mutation operations try to tolerate.
func Validate(tree []model.Block) error {
	seen := map[string]bool{}
	for _, id := range IDs(tree) {
		if strings.TrimSpace(id) == "" {
			return errors.New("block with empty clientId")
		}
		if seen[id] {
			return fmt.Errorf("duplicate clientId %q", id)
		}
		seen[id] = true
	}
	return nil
}
