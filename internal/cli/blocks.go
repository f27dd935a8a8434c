package cli

import (
	"strings"
	"time"

	"blockview-cli/internal/blocktree"
	"blockview-cli/internal/model"
	"blockview-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage blocks inside a document",
	}

	var docFlag string
	cmd.PersistentFlags().StringVar(&docFlag, "doc", "", "Document id (default: current document)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks (depth-first, with depth and parent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := resolveDocID(app, db, docFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, _ := db.FindDocument(docID)
			return writeOut(cmd, app, map[string]any{"data": flattenForOutput(doc.Blocks)})
		},
	}

	var addParent string
	var addIndex int
	var addKind string
	addCmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Insert a block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := resolveDocID(app, db, docFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			content := strings.Join(args, " ")
			index := addIndex
			if index < 0 {
				doc, _ := db.FindDocument(docID)
				index = len(doc.Blocks)
				if p := blocktree.Find(doc.Blocks, strings.TrimSpace(addParent)); p != nil {
					index = len(p.InnerBlocks)
				}
			}
			id, err := mutate.InsertBlock(db, docID, addParent, index, model.BlockKind(addKind), content, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("blocks.inserted", docID, map[string]any{"block": id})
			app.logger.Debug("inserted block", "id", id, "doc", docID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id}})
		},
	}
	addCmd.Flags().StringVar(&addParent, "parent", "", "Parent block id (default: document root)")
	addCmd.Flags().IntVar(&addIndex, "index", -1, "Insertion index among siblings (-1 = append)")
	addCmd.Flags().StringVar(&addKind, "kind", string(model.BlockParagraph), "Block kind (paragraph|heading|list|list-item|quote|code|group)")

	var moveFrom string
	var moveTo string
	var moveIndex int
	moveCmd := &cobra.Command{
		Use:   "move <block-id> [block-id...]",
		Short: "Move blocks to a new parent/index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := resolveDocID(app, db, docFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, payload, err := mutate.MoveBlocksToPosition(db, docID, args, moveFrom, moveTo, moveIndex, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("blocks.moved", docID, payload)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "move": payload}})
		},
	}
	moveCmd.Flags().StringVar(&moveFrom, "from-parent", "", "Current parent block id (default: document root)")
	moveCmd.Flags().StringVar(&moveTo, "to-parent", "", "Destination parent block id (default: document root)")
	moveCmd.Flags().IntVar(&moveIndex, "index", 0, "Destination index among the new siblings")

	removeCmd := &cobra.Command{
		Use:   "remove <block-id>",
		Short: "Remove a block and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := resolveDocID(app, db, docFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			changed, err := mutate.RemoveBlock(db, docID, id, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("blocks.removed", docID, map[string]any{"block": id})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "changed": changed}})
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <block-id>",
		Short: "Set the selected block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if _, _, ok := db.FindBlock(id); !ok {
				return writeErr(cmd, errNotFound("block", id))
			}
			db.SelectBlock(id)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"selectedBlockId": db.SelectedBlockID}})
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(moveCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(selectCmd)
	return cmd
}

func flattenForOutput(tree []model.Block) []map[string]any {
	out := []map[string]any{}
	var walk func(blocks []model.Block, parentID string, depth int)
	walk = func(blocks []model.Block, parentID string, depth int) {
		for _, b := range blocks {
			out = append(out, map[string]any{
				"clientId": b.ClientID,
				"parentId": parentID,
				"depth":    depth,
				"kind":     b.Kind,
				"content":  b.Content,
				"children": len(b.InnerBlocks),
			})
			walk(b.InnerBlocks, b.ClientID, depth+1)
		}
	}
	walk(tree, "", 0)
	return out
}
