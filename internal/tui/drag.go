package tui

import (
	"strings"
	"time"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
)

const (
	// rowHeight is the drag-space height of one row in translate units.
	// Gesture adapters convert their native deltas into these units.
	rowHeight = 36

	// reparentThreshold is the horizontal translate magnitude beyond which a
	// drag is read as an explicit re-parent gesture instead of a reorder.
	reparentThreshold = 20

	// settleDelay keeps the working tree on screen after a commit so the
	// hand-off to the authoritative order doesn't visually snap.
	settleDelay = 200 * time.Millisecond
)

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragActive
	dragSettling
)

// dragTick is one pointer-move sample in drag space. velocity only matters
// by sign; position is the dragged row's current flattened list position.
type dragTick struct {
	vertical   int
	horizontal int
	velocity   int
	position   int
}

// pendingTarget is the one outstanding move computed by the targeting
// algorithm, consumed exactly once on drop.
type pendingTarget struct {
	clientID       string
	originalParent string
	targetID       string
	targetIndex    int
}

// blockMover commits a finished drag to the authoritative store.
type blockMover interface {
	MoveBlocksToPosition(clientIDs []string, fromParentID, toParentID string, toIndex int) error
}

// listView owns the interactive state of the block list: the authoritative
// tree snapshot, the transient working tree shown while a drag is in flight,
// the position registry, and the expansion map.
type listView struct {
	blocks   []model.Block
	working  []model.Block
	expanded expansionState
	registry positionRegistry
	mover    blockMover

	phase      dragPhase
	draggingID string
	pending    *pendingTarget
	settleSeq  int
}

func newListView(blocks []model.Block, mover blockMover) listView {
	return listView{
		blocks:   blocktree.Clone(blocks),
		expanded: expansionState{},
		registry: newPositionRegistry(),
		mover:    mover,
	}
}

// tree returns what should be rendered right now: the working tree while a
// drag is in flight or settling, the authoritative snapshot otherwise.
func (lv *listView) tree() []model.Block {
	if lv.working != nil {
		return lv.working
	}
	return lv.blocks
}

// syncBlocks refreshes the authoritative snapshot. The working tree, when
// present, keeps rendering until the drag settles.
func (lv *listView) syncBlocks(blocks []model.Block) {
	lv.blocks = blocktree.Clone(blocks)
}

// startDrag begins a drag session: the dragged block is collapsed so its
// subtree drops out of the index math, and the working tree snapshots the
// authoritative one. A second drag cannot start while one is in flight.
func (lv *listView) startDrag(clientID string) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" || lv.phase != dragIdle {
		return
	}
	if blocktree.Find(lv.blocks, clientID) == nil {
		return
	}
	lv.draggingID = clientID
	lv.phase = dragActive
	lv.pending = nil
	lv.expanded.collapse(clientID)
	lv.working = blocktree.Clone(lv.blocks)
}

// moveItem consumes one drag tick and, when the gesture qualifies, rewrites
// the working tree and records the pending target. Every rejection leaves all
// state untouched; the reorder UI must never fail mid-gesture.
func (lv *listView) moveItem(t dragTick) {
	if lv.phase != dragActive || strings.TrimSpace(lv.draggingID) == "" {
		return
	}
	if t.velocity == 0 {
		return
	}
	dir := 1
	if t.velocity < 0 {
		dir = -1
	}
	// Past the first/last row in the direction of travel.
	if dir > 0 && t.position >= lv.registry.maxPosition() {
		return
	}
	if dir < 0 && t.position <= 0 {
		return
	}
	// The user is catching up after overshooting: translate disagrees with
	// velocity. Wait until they line up again.
	if (t.vertical > 0 && dir < 0) || (t.vertical < 0 && dir > 0) {
		return
	}
	// Minimum-movement hysteresis: less than half a row is jitter.
	if abs(t.vertical) < rowHeight/2 {
		return
	}

	if abs(t.horizontal) > reparentThreshold {
		lv.reparent(t, dir)
		return
	}

	entry, foundIdx := lv.registry.findFirstValidSibling(t.position, dir)
	if entry == nil {
		return
	}
	// The drag must have covered enough ground to justify skipping that many
	// rows, or slow drags would leapfrog.
	if abs(t.vertical) <= rowHeight*abs(t.position-foundIdx)/2 {
		return
	}
	lv.insertAdjacentTo(entry.clientID, dir > 0)
}

// reparent handles the explicit horizontal gesture: out-dent toward a sibling
// slot, or in-dent into a container.
func (lv *listView) reparent(t dragTick, dir int) {
	steps := (abs(t.vertical) + rowHeight - 1) / rowHeight
	entry, ok := lv.registry.at(t.position + dir*steps)
	if !ok {
		return
	}
	if t.horizontal < 0 {
		if entry.parentID == "" || entry.dropSibling {
			lv.insertAdjacentTo(entry.clientID, dir > 0)
			return
		}
		if entry.dropContainer {
			lv.insertFirstChildOf(entry.clientID)
		}
		return
	}
	// In-dent only honors container targets.
	if entry.dropContainer {
		lv.insertFirstChildOf(entry.clientID)
	}
}

func (lv *listView) insertAdjacentTo(anchorID string, after bool) {
	moved := blocktree.Find(lv.blocks, lv.draggingID)
	if moved == nil {
		return
	}
	removed, originalParent := blocktree.Remove(lv.blocks, lv.draggingID)
	next, targetParent, targetIndex := blocktree.InsertAdjacent(removed, anchorID, *moved, after)
	if targetIndex < 0 {
		return
	}
	lv.working = next
	lv.pending = &pendingTarget{
		clientID:       lv.draggingID,
		originalParent: originalParent,
		targetID:       targetParent,
		targetIndex:    targetIndex,
	}
}

func (lv *listView) insertFirstChildOf(containerID string) {
	moved := blocktree.Find(lv.blocks, lv.draggingID)
	if moved == nil {
		return
	}
	removed, originalParent := blocktree.Remove(lv.blocks, lv.draggingID)
	if blocktree.Find(removed, containerID) == nil {
		return
	}
	lv.working = blocktree.InsertFirstChild(removed, containerID, *moved)
	lv.pending = &pendingTarget{
		clientID:       lv.draggingID,
		originalParent: originalParent,
		targetID:       containerID,
		targetIndex:    0,
	}
}

// dropItem finishes the drag session. With a pending target it commits once
// to the store and enters the settling phase; without one it returns to idle
// immediately with zero store calls. The returned bool reports whether a
// settle timer should be started (tagged with the returned sequence).
func (lv *listView) dropItem() (settling bool, seq int, err error) {
	if lv.phase != dragActive {
		return false, 0, nil
	}
	lv.expanded.expand(lv.draggingID)
	lv.draggingID = ""

	if lv.pending == nil {
		lv.phase = dragIdle
		lv.working = nil
		return false, 0, nil
	}
	p := *lv.pending
	lv.pending = nil
	lv.phase = dragSettling
	lv.settleSeq++

	if lv.mover != nil {
		err = lv.mover.MoveBlocksToPosition([]string{p.clientID}, p.originalParent, p.targetID, p.targetIndex)
	}
	if err != nil {
		// The optimistic working tree no longer reflects anything real;
		// fall back to mirroring the authoritative tree right away.
		lv.working = nil
		lv.phase = dragIdle
		return false, 0, err
	}
	return true, lv.settleSeq, nil
}

// finishSettle ends the settling phase started by dropItem. Stale sequences
// (an unmount or a newer drag) are ignored.
func (lv *listView) finishSettle(seq int) {
	if lv.phase != dragSettling || seq != lv.settleSeq {
		return
	}
	lv.working = nil
	lv.phase = dragIdle
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
