package tui

import (
	"blockview-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir string, db *store.DB) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	debugLog().Debug("starting TUI", "dir", dir, "documents", len(db.Documents))
	m := newAppModel(dir, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
