package model

import "time"

// BlockKind identifies the content type of a block. Kinds are a closed set for
// now; unknown kinds round-trip through the store untouched.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockList      BlockKind = "list"
	BlockListItem  BlockKind = "list-item"
	BlockQuote     BlockKind = "quote"
	BlockCode      BlockKind = "code"
	BlockGroup     BlockKind = "group"
)

// AllowsChildren reports whether blocks of this kind may contain nested blocks.
// This is what makes a row a container-drop target in the list view.
func (k BlockKind) AllowsChildren() bool {
	switch k {
	case BlockList, BlockListItem, BlockQuote, BlockGroup:
		return true
	default:
		return false
	}
}

// Block is one node of a document's content tree. ClientID is unique across
// the whole document; InnerBlocks is the ordered child sequence.
type Block struct {
	ClientID string    `json:"clientId"`
	Kind     BlockKind `json:"kind"`
	// Content is markdown source for text-bearing kinds; empty for pure
	// container kinds like group.
	Content string `json:"content,omitempty"`

	InnerBlocks []Block `json:"innerBlocks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Blocks is the authoritative content tree. It is replaced wholesale by
	// committed moves, never patched in place.
	Blocks []Block `json:"blocks"`

	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
