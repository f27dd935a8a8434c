package cli

import (
	"strings"
	"time"

	"blockview-cli/internal/model"
	"blockview-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage documents",
	}

	var includeArchived bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docs := db.Documents
			if !includeArchived {
				docs = db.ActiveDocuments()
			}
			out := make([]map[string]any, 0, len(docs))
			for _, d := range docs {
				out = append(out, docSummary(d, d.ID == db.CurrentDocumentID))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	listCmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived documents")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			id, err := mutate.CreateDocument(db, title, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("documents.created", id, map[string]any{"title": title})
			app.logger.Debug("created document", "id", id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "title": title}})
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <document-id>",
		Short: "Set the current document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if _, ok := db.FindDocument(id); !ok {
				return writeErr(cmd, errNotFound("document", id))
			}
			db.CurrentDocumentID = id
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentDocumentId": id}})
		},
	}

	archiveCmd := newDocsArchiveCmd(app, "archive", true)
	unarchiveCmd := newDocsArchiveCmd(app, "unarchive", false)

	cmd.AddCommand(listCmd)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(useCmd)
	cmd.AddCommand(archiveCmd)
	cmd.AddCommand(unarchiveCmd)
	return cmd
}

func newDocsArchiveCmd(app *App, use string, archived bool) *cobra.Command {
	short := "Archive a document"
	event := "documents.archived"
	if !archived {
		short = "Restore an archived document"
		event = "documents.unarchived"
	}
	return &cobra.Command{
		Use:   use + " <document-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			changed, err := mutate.SetDocumentArchived(db, id, archived, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(event, id, nil)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "archived": archived, "changed": changed}})
		},
	}
}

func docSummary(d model.Document, current bool) map[string]any {
	return map[string]any{
		"id":       d.ID,
		"title":    d.Title,
		"archived": d.Archived,
		"current":  current,
		"blocks":   countBlocks(d.Blocks),
	}
}

func countBlocks(tree []model.Block) int {
	n := 0
	for _, b := range tree {
		n += 1 + countBlocks(b.InnerBlocks)
	}
	return n
}
