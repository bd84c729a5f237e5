// Package interpret turns the flat block collection returned by the
// analysis service into form key/value pairs and a plain-text transcript.
// All functions are pure and tolerate dangling references by substituting
// empty strings; none of them return errors.
package interpret

import (
	"strings"

	"github.com/tmarler/formsight/internal/analysis"
)

// Index maps block ID to block for O(1) resolution of relationship edges.
type Index map[string]analysis.Block

// BuildIndex builds the per-request block index. An empty or nil input
// yields an empty index.
func BuildIndex(blocks []analysis.Block) Index {
	idx := make(Index, len(blocks))
	for _, b := range blocks {
		idx[b.ID] = b
	}
	return idx
}

// childText reconstructs a block's text from its CHILD relationship:
// each child's text, or a bracketed selection status for selection
// elements, joined by single spaces. A child ID missing from the index
// contributes an empty segment. A block with no CHILD relationship
// yields an empty string.
func childText(b analysis.Block, idx Index) string {
	ids := b.Related(analysis.RelationshipChild)
	if ids == nil {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		child := idx[id]
		if child.SelectionStatus != "" {
			parts = append(parts, "["+child.SelectionStatus+"]")
			continue
		}
		parts = append(parts, child.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// cleanKey normalizes a reconstructed key label: colons stripped,
// surrounding whitespace trimmed.
func cleanKey(label string) string {
	return strings.TrimSpace(strings.ReplaceAll(label, ":", ""))
}

// KeyValuePairs reconstructs form fields from KEY_VALUE_SET blocks.
// KEY-tagged blocks are visited in input order; a KEY whose normalized
// label is empty is discarded; duplicate normalized labels overwrite
// (last write wins). A VALUE relationship pointing at a nonexistent
// block, or a value block with no children, yields an empty value.
func KeyValuePairs(blocks []analysis.Block, idx Index) map[string]string {
	pairs := make(map[string]string)
	for _, b := range blocks {
		if b.BlockType != analysis.BlockTypeKeyValueSet || !b.HasEntityType(analysis.EntityTypeKey) {
			continue
		}
		key := cleanKey(childText(b, idx))
		if key == "" {
			continue
		}

		var value string
		if ids := b.Related(analysis.RelationshipValue); len(ids) > 0 {
			if vb, ok := idx[ids[0]]; ok {
				value = childText(vb, idx)
			}
		}
		pairs[key] = value
	}
	return pairs
}

// RawText linearizes the document transcript: every LINE block's own
// text, input order, newline-separated. Lines with no text contribute
// an empty line.
func RawText(blocks []analysis.Block) string {
	var lines []string
	for _, b := range blocks {
		if b.BlockType == analysis.BlockTypeLine {
			lines = append(lines, b.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Result is the interpreted view of one analysis response.
type Result struct {
	Pairs      map[string]string
	RawText    string
	BlockCount int
}

// Interpret runs the full pipeline: index, key/value reconstruction,
// transcript.
func Interpret(blocks []analysis.Block) Result {
	idx := BuildIndex(blocks)
	return Result{
		Pairs:      KeyValuePairs(blocks, idx),
		RawText:    RawText(blocks),
		BlockCount: len(blocks),
	}
}
