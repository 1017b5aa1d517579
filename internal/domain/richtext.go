package domain

import (
	"bytes"
	"encoding/json"
)

// Block kinds understood by the description renderer.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
)

// Inline is a text child of a rich-text block.
type Inline struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// Block is one rich-text block as authored in the content system.
type Block struct {
	Type     string   `json:"type"`
	Level    int      `json:"level,omitempty"`
	Children []Inline `json:"children"`
}

// RichText is an ordered block list. The content API sends either a block
// array or, for older entries, a plain string.
type RichText []Block

// UnmarshalJSON accepts a block array, a plain string or null.
func (r *RichText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*r = nil
			return nil
		}
		*r = RichText{{Type: BlockParagraph, Children: []Inline{{Type: "text", Text: s}}}}
		return nil
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	*r = blocks
	return nil
}
