package tui

// positionEntry is the per-row metadata the drag algorithm needs: identity,
// parentage, and which drop roles the row can play.
type positionEntry struct {
	clientID      string
	parentID      string
	dropSibling   bool
	dropContainer bool
}

// positionRegistry maps a row's linear list position to its tree metadata.
// Rows overwrite their slot on every render; the registry is never cleared.
// Stale slots beyond the current flattened length are simply never read,
// because positions are recomputed from the flattened tree each render.
type positionRegistry struct {
	entries map[int]positionEntry
	max     int
}

func newPositionRegistry() positionRegistry {
	return positionRegistry{entries: map[int]positionEntry{}}
}

func (r *positionRegistry) setPosition(pos int, e positionEntry) {
	if pos < 0 {
		return
	}
	if r.entries == nil {
		r.entries = map[int]positionEntry{}
	}
	r.entries[pos] = e
	if pos > r.max {
		r.max = pos
	}
}

func (r *positionRegistry) at(pos int) (positionEntry, bool) {
	e, ok := r.entries[pos]
	return e, ok
}

// maxPosition returns the highest position ever written. It bounds the
// sibling walk and the first/last-row drag guards.
func (r *positionRegistry) maxPosition() int {
	if len(r.entries) == 0 {
		return 0
	}
	return r.max
}

// findFirstValidSibling walks from current in the direction of velocitySign
// (positive = down the list) and returns the first entry that is a sibling
// drop target sharing the current entry's parent, plus its position. It
// returns (nil, -1) when the walk leaves the populated range or when the
// current position itself has no entry.
func (r *positionRegistry) findFirstValidSibling(current, velocitySign int) (*positionEntry, int) {
	if velocitySign == 0 {
		return nil, -1
	}
	cur, ok := r.at(current)
	if !ok {
		return nil, -1
	}
	step := 1
	if velocitySign < 0 {
		step = -1
	}
	for pos := current + step; pos >= 0 && pos <= r.maxPosition(); pos += step {
		e, ok := r.at(pos)
		if !ok {
			continue
		}
		if !e.dropSibling || e.parentID != cur.parentID {
			continue
		}
		found := e
		return &found, pos
	}
	return nil, -1
}
