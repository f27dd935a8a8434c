package tui

import (
	"blockview-cli/internal/model"
)

// blockRow is one visible line of the block list: a block plus its position
// metadata in the flattened, currently-expanded tree.
type blockRow struct {
	clientID string
	parentID string
	depth    int
	kind     model.BlockKind
	content  string

	hasChildren bool
	collapsed   bool

	// Drop-target roles for the drag algorithm. The dragged row itself is
	// neither a sibling nor a container target.
	dropSibling   bool
	dropContainer bool
}

// flattenBlocks walks the tree depth-first, skipping the children of
// collapsed blocks, and returns the rows in visual order. draggingID marks
// the row currently being dragged (pass "" when no drag is active).
func flattenBlocks(tree []model.Block, expanded expansionState, draggingID string) []blockRow {
	var out []blockRow
	var walk func(blocks []model.Block, parentID string, depth int)
	walk = func(blocks []model.Block, parentID string, depth int) {
		for _, b := range blocks {
			collapsed := !expanded.isExpanded(b.ClientID)
			out = append(out, blockRow{
				clientID:      b.ClientID,
				parentID:      parentID,
				depth:         depth,
				kind:          b.Kind,
				content:       b.Content,
				hasChildren:   len(b.InnerBlocks) > 0,
				collapsed:     collapsed,
				dropSibling:   b.ClientID != draggingID,
				dropContainer: b.Kind.AllowsChildren() && b.ClientID != draggingID,
			})
			if collapsed {
				continue
			}
			walk(b.InnerBlocks, b.ClientID, depth+1)
		}
	}
	walk(tree, "", 0)
	return out
}

// refreshRows flattens the currently rendered tree and writes every row into
// the position registry, mirroring how rows report their own positions as
// they render. Returns the rows for display.
func (lv *listView) refreshRows() []blockRow {
	rows := flattenBlocks(lv.tree(), lv.expanded, lv.draggingID)
	for i, r := range rows {
		lv.registry.setPosition(i, positionEntry{
			clientID:      r.clientID,
			parentID:      r.parentID,
			dropSibling:   r.dropSibling,
			dropContainer: r.dropContainer,
		})
	}
	return rows
}

// rowIndexOf returns the flattened position of clientID, or -1.
func rowIndexOf(rows []blockRow, clientID string) int {
	for i := range rows {
		if rows[i].clientID == clientID {
			return i
		}
	}
	return -1
}
