package mutate

import (
	"strings"
	"time"

	"blockview-cli/internal/model"
	"blockview-cli/internal/store"
)

// CreateDocument adds an empty document and returns its id.
func CreateDocument(db *store.DB, title string, now time.Time) (string, error) {
	title = strings.TrimSpace(title)
	if db == nil || title == "" {
		return "", nil
	}
	id, err := store.NewDocumentID(db)
	if err != nil {
		return "", err
	}
	db.Documents = append(db.Documents, model.Document{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if strings.TrimSpace(db.CurrentDocumentID) == "" {
		db.CurrentDocumentID = id
	}
	return id, nil
}

// SetDocumentArchived flips a document's archived flag.
func SetDocumentArchived(db *store.DB, documentID string, archived bool, now time.Time) (bool, error) {
	documentID = strings.TrimSpace(documentID)
	if db == nil || documentID == "" {
		return false, nil
	}
	doc, ok := db.FindDocument(documentID)
	if !ok {
		return false, NotFoundError{Kind: "document", ID: documentID}
	}
	if doc.Archived == archived {
		return false, nil
	}
	doc.Archived = archived
	doc.UpdatedAt = now
	return true, nil
}
