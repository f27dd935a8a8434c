package cli

import (
	"os"
	"strings"

	"blockview-cli/internal/format"
	"blockview-cli/internal/store"
	"blockview-cli/internal/tui"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Verbose    bool

	logger *charmlog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "blockview",
		Short:        "Local-first block document CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  blockview

  # Scriptable commands
  blockview docs list
  blockview blocks list --doc doc-abc123
  blockview blocks move block-abc123 --doc doc-abc123 --to-parent block-def456 --index 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := charmlog.WarnLevel
		if app.Verbose {
			level = charmlog.DebugLevel
		}
		app.logger = newLogger(cmd.ErrOrStderr(), level)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("BLOCKVIEW_DIR", ""), "Path to the .blockview store dir (default: discovered from the working directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newGuideCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s.Dir, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

// resolveDocID picks the document a blocks command operates on: the --doc
// flag when given, the current document otherwise.
func resolveDocID(app *App, db *store.DB, flag string) (string, error) {
	id := strings.TrimSpace(flag)
	if id == "" {
		id = db.CurrentDocumentID
	}
	if id == "" {
		return "", errNoDocument
	}
	if _, ok := db.FindDocument(id); !ok {
		return "", errNotFound("document", id)
	}
	return id, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err.Error())
	return err
}
