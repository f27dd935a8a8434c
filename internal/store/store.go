package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"blockview-cli/internal/model"
)

const (
	dbFileName     = "db.json"
	eventsFileName = "events.jsonl"
)

// DB is the authoritative in-memory state. It is loaded from SQLite, mutated
// through internal/mutate (or the DB methods in blocks.go), and saved back
// wholesale.
type DB struct {
	Version           int              `json:"version"`
	CurrentDocumentID string           `json:"currentDocumentId,omitempty"`
	SelectedBlockID   string           `json:"selectedBlockId,omitempty"`
	Documents         []model.Document `json:"documents"`

	// HighlightedBlockID is transient hover state; it is intentionally not
	// persisted.
	HighlightedBlockID string `json:"-"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .blockview workspace dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".blockview")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".blockview"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// SQLite is the source of truth. LoadSQLite auto-imports a legacy db.json
	// once if the SQLite state is still empty.
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) FindDocument(id string) (*model.Document, bool) {
	id = strings.TrimSpace(id)
	if db == nil || id == "" {
		return nil, false
	}
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			return &db.Documents[i], true
		}
	}
	return nil, false
}

// ActiveDocuments returns non-archived documents in stored order.
func (db *DB) ActiveDocuments() []model.Document {
	if db == nil {
		return nil
	}
	out := make([]model.Document, 0, len(db.Documents))
	for _, d := range db.Documents {
		if d.Archived {
			continue
		}
		out = append(out, d)
	}
	return out
}
