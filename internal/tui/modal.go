package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewBlock
	modalNewDocument
	modalJump
	modalConfirmArchive
	modalConfirmDelete
)

func newModalInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 48
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorAccent)
	ti.Focus()
	return ti
}

// renderModalBox draws a titled box centered in the available width. Borders
// are avoided inside the body since nested bordered components show background
// artifacts on some terminals.
func renderModalBox(width int, title, content string) string {
	boxW := width - 8
	if boxW > 64 {
		boxW = 64
	}
	if boxW < 24 {
		boxW = 24
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(boxW).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Width(boxW).
		Padding(1, 1).
		Render(content)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Render(header + "\n" + body)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func renderInputModal(width int, title string, input textinput.Model) string {
	content := strings.Join([]string{
		input.View(),
		"",
		styleMuted().Render("enter: confirm   esc: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderConfirmModal(width int, title, body string) string {
	content := strings.Join([]string{
		body,
		"",
		styleMuted().Render("y/enter: confirm   n/esc: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}
