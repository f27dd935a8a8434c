package tui

import (
	"os"
	"strings"
	"sync"

	"blockview-cli/internal/model"
)

// Terminal apps can't change the user's font, but we can fall back from
// Unicode to ASCII glyphs on terminals that don't render them cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("BLOCKVIEW_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

// kindGlyph is the one-character block-kind marker shown before the content.
func kindGlyph(kind model.BlockKind) string {
	ascii := glyphs() == glyphSetASCII
	switch kind {
	case model.BlockHeading:
		return "#"
	case model.BlockList:
		if ascii {
			return "="
		}
		return "≡"
	case model.BlockListItem:
		if ascii {
			return "*"
		}
		return "•"
	case model.BlockQuote:
		return ">"
	case model.BlockCode:
		if ascii {
			return "$"
		}
		return "⌘"
	case model.BlockGroup:
		if ascii {
			return "+"
		}
		return "▤"
	default:
		if ascii {
			return "-"
		}
		return "¶"
	}
}
