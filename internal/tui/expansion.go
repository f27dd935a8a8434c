package tui

import "strings"

// expansionState maps block client ids to expanded/collapsed. Ids that are
// not present are treated as expanded, so a fresh list view shows everything.
type expansionState map[string]bool

func (e expansionState) isExpanded(clientID string) bool {
	v, ok := e[clientID]
	return !ok || v
}

// expand marks a block expanded. Empty ids are a no-op.
func (e expansionState) expand(clientID string) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return
	}
	e[clientID] = true
}

// collapse marks a block collapsed. Empty ids are a no-op.
func (e expansionState) collapse(clientID string) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return
	}
	e[clientID] = false
}

func (e expansionState) toggle(clientID string) {
	if e.isExpanded(clientID) {
		e.collapse(clientID)
	} else {
		e.expand(clientID)
	}
}
