package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"blockview-cli/internal/blocktree"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func idExists(db *DB, id string) bool {
	if db == nil {
		return false
	}
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			return true
		}
		if blocktree.Find(db.Documents[i].Blocks, id) != nil {
			return true
		}
	}
	return false
}

// NewDocumentID returns a fresh doc-<suffix> id not present in db.
func NewDocumentID(db *DB) (string, error) {
	for {
		id, err := newRandomID("doc")
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
}

// NewBlockID returns a fresh block-<suffix> id not present in db.
func NewBlockID(db *DB) (string, error) {
	for {
		id, err := newRandomID("block")
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
}

// NewEventID returns a fresh evt-<suffix> id. Event ids are only ever
// appended to the log, so collision checking against state is unnecessary.
func NewEventID() (string, error) {
	return newRandomID("evt")
}
