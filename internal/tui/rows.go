package tui

import (
	"fmt"
	"io"
	"strings"

	"blockview-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type documentItem struct {
	doc     model.Document
	current bool
}

func (i documentItem) FilterValue() string { return i.doc.Title }

func (i documentItem) Title() string {
	if i.current {
		return i.doc.Title + "  *"
	}
	return i.doc.Title
}

func (i documentItem) Description() string {
	n := countBlocks(i.doc.Blocks)
	if n == 1 {
		return "1 block"
	}
	return fmt.Sprintf("%d blocks", n)
}

func countBlocks(tree []model.Block) int {
	n := 0
	for _, blk := range tree {
		n += 1 + countBlocks(blk.InnerBlocks)
	}
	return n
}

// blockRowItem is one flattened row in the block list. Render state that the
// delegate needs (drag, hover) rides along on the item itself.
type blockRowItem struct {
	row         blockRow
	dragging    bool
	highlighted bool
}

func (i blockRowItem) FilterValue() string { return i.row.content }

func (i blockRowItem) Title() string {
	indent := strings.Repeat("  ", i.row.depth)
	twisty := " "
	if i.row.hasChildren {
		if i.row.collapsed {
			twisty = glyphTwistyCollapsed()
		} else {
			twisty = glyphTwistyExpanded()
		}
	}
	label := strings.TrimSpace(firstLine(i.row.content))
	if label == "" {
		label = "(empty)"
	}
	return indent + twisty + " " + kindGlyph(i.row.kind) + " " + label
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type blockRowDelegate struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	dragged     lipgloss.Style
	highlighted lipgloss.Style
}

func newBlockRowDelegate() blockRowDelegate {
	return blockRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		dragged: lipgloss.NewStyle().
			Foreground(colorDragFg).
			Bold(true).
			Italic(true),
		highlighted: lipgloss.NewStyle().
			Background(colorHighlightBg),
	}
}

func (d blockRowDelegate) Height() int  { return 1 }
func (d blockRowDelegate) Spacing() int { return 0 }
func (d blockRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d blockRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(blockRowItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	switch {
	case it.dragging:
		style = d.dragged
	case index == m.Index():
		style = d.selected
	case it.highlighted:
		style = d.highlighted
	}
	fmt.Fprint(w, renderRowLine(contentW, style, it.Title()))
}

// renderRowLine pads or cuts line to exactly width columns before styling, so
// a background highlight covers the whole row.
func renderRowLine(width int, style lipgloss.Style, line string) string {
	plainW := xansi.StringWidth(line)
	if plainW < width {
		line += strings.Repeat(" ", width-plainW)
	} else if plainW > width {
		line = xansi.Cut(line, 0, width)
	}
	return style.Render(line)
}
