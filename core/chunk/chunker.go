// Package chunk splits text into pieces that fit Notion's rich-text limit.
// Paragraph breaks are preferred split points, then spaces; a single word
// longer than the limit is cut mid-word.
package chunk

import "strings"

// DefaultMaxRunes is the Notion API limit for a single rich-text item.
const DefaultMaxRunes = 2000

// Chunker splits text into chunks of at most MaxRunes runes.
type Chunker struct {
	MaxRunes int
}

// New creates a Chunker with the given limit.
// Defaults to DefaultMaxRunes if maxRunes <= 0.
func New(maxRunes int) *Chunker {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Chunker{MaxRunes: maxRunes}
}

// Chunk splits text into non-empty chunks. Paragraphs (separated by blank
// lines) are packed together while they fit.
func (c *Chunker) Chunk(text string) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
		}
		cur = nil
	}

	for _, para := range strings.Split(text, "\n\n") {
		p := []rune(strings.TrimSpace(para))
		if len(p) == 0 {
			continue
		}

		if len(cur) > 0 && len(cur)+2+len(p) <= c.MaxRunes {
			cur = append(cur, '\n', '\n')
			cur = append(cur, p...)
			continue
		}

		flush()
		pieces := c.splitLong(p)
		for _, piece := range pieces[:len(pieces)-1] {
			chunks = append(chunks, string(piece))
		}
		cur = pieces[len(pieces)-1]
	}
	flush()
	return chunks
}

// splitLong cuts p at spaces into pieces of at most MaxRunes runes.
// It always returns at least one piece.
func (c *Chunker) splitLong(p []rune) [][]rune {
	var pieces [][]rune
	for len(p) > c.MaxRunes {
		cut := c.MaxRunes
		for i := c.MaxRunes; i > 0; i-- {
			if p[i] == ' ' || p[i] == '\n' {
				cut = i
				break
			}
		}
		if piece := []rune(strings.TrimSpace(string(p[:cut]))); len(piece) > 0 {
			pieces = append(pieces, piece)
		}
		p = []rune(strings.TrimLeft(string(p[cut:]), " \n"))
	}
	return append(pieces, p)
}
