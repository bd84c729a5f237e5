package interpret

import (
	"strings"
	"testing"

	"github.com/tmarler/formsight/internal/analysis"
)

func wordBlock(id, text string) analysis.Block {
	return analysis.Block{ID: id, BlockType: analysis.BlockTypeWord, Text: text}
}

func keyBlock(id string, childIDs, valueIDs []string) analysis.Block {
	b := analysis.Block{
		ID:          id,
		BlockType:   analysis.BlockTypeKeyValueSet,
		EntityTypes: []string{analysis.EntityTypeKey},
	}
	if childIDs != nil {
		b.Relationships = append(b.Relationships, analysis.Relationship{Type: analysis.RelationshipChild, IDs: childIDs})
	}
	if valueIDs != nil {
		b.Relationships = append(b.Relationships, analysis.Relationship{Type: analysis.RelationshipValue, IDs: valueIDs})
	}
	return b
}

func valueBlock(id string, childIDs []string) analysis.Block {
	b := analysis.Block{
		ID:          id,
		BlockType:   analysis.BlockTypeKeyValueSet,
		EntityTypes: []string{analysis.EntityTypeValue},
	}
	if childIDs != nil {
		b.Relationships = append(b.Relationships, analysis.Relationship{Type: analysis.RelationshipChild, IDs: childIDs})
	}
	return b
}

func TestBuildIndex_Empty(t *testing.T) {
	idx := BuildIndex(nil)
	if len(idx) != 0 {
		t.Errorf("expected empty index, got %d entries", len(idx))
	}
}

func TestBuildIndex_CoversAllBlocks(t *testing.T) {
	blocks := []analysis.Block{
		wordBlock("w1", "Name"),
		wordBlock("w2", "John"),
		keyBlock("k1", []string{"w1"}, []string{"v1"}),
	}
	idx := BuildIndex(blocks)
	if len(idx) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(idx))
	}
	if idx["w2"].Text != "John" {
		t.Errorf("expected w2 text %q, got %q", "John", idx["w2"].Text)
	}
}

func TestKeyValuePairs_BasicPair(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, []string{"v1"}),
		valueBlock("v1", []string{"w2"}),
		wordBlock("w1", "Name:"),
		wordBlock("w2", "John"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d: %v", len(pairs), pairs)
	}
	if pairs["Name"] != "John" {
		t.Errorf("expected Name=John, got %v", pairs)
	}
}

func TestKeyValuePairs_MultiWordLabelAndValue(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1", "w2"}, []string{"v1"}),
		valueBlock("v1", []string{"w3", "w4"}),
		wordBlock("w1", "Full"),
		wordBlock("w2", "Name:"),
		wordBlock("w3", "Jane"),
		wordBlock("w4", "Doe"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if pairs["Full Name"] != "Jane Doe" {
		t.Errorf("expected %q=%q, got %v", "Full Name", "Jane Doe", pairs)
	}
}

func TestKeyValuePairs_KeyWithoutChildrenDiscarded(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", nil, []string{"v1"}),
		valueBlock("v1", []string{"w1"}),
		wordBlock("w1", "orphaned"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if len(pairs) != 0 {
		t.Errorf("expected key without children to be discarded, got %v", pairs)
	}
}

func TestKeyValuePairs_DanglingValueID(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, []string{"nope"}),
		wordBlock("w1", "Phone:"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if v, ok := pairs["Phone"]; !ok || v != "" {
		t.Errorf("expected Phone with empty value, got %v", pairs)
	}
}

func TestKeyValuePairs_NoValueRelationship(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, nil),
		wordBlock("w1", "Email:"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if v, ok := pairs["Email"]; !ok || v != "" {
		t.Errorf("expected Email with empty value, got %v", pairs)
	}
}

func TestKeyValuePairs_ValueBlockWithoutChildren(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, []string{"v1"}),
		valueBlock("v1", nil),
		wordBlock("w1", "Address:"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if v, ok := pairs["Address"]; !ok || v != "" {
		t.Errorf("expected Address with empty value, got %v", pairs)
	}
}

func TestKeyValuePairs_MissingChildContributesEmptySegment(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1", "gone", "w2"}, nil),
		wordBlock("w1", "Member"),
		wordBlock("w2", "ID:"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	// The dangling child renders as an empty segment between the words.
	if _, ok := pairs["Member  ID"]; !ok {
		t.Errorf("expected key with double space from empty segment, got %v", pairs)
	}
}

func TestKeyValuePairs_SelectionElementChild(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, []string{"v1"}),
		valueBlock("v1", []string{"sel"}),
		wordBlock("w1", "Consent given:"),
		{ID: "sel", BlockType: analysis.BlockTypeSelectionElement, SelectionStatus: analysis.SelectionSelected},
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if pairs["Consent given"] != "[SELECTED]" {
		t.Errorf("expected [SELECTED] value, got %v", pairs)
	}
}

func TestKeyValuePairs_DuplicateKeysLastWriteWins(t *testing.T) {
	blocks := []analysis.Block{
		keyBlock("k1", []string{"w1"}, []string{"v1"}),
		keyBlock("k2", []string{"w2"}, []string{"v2"}),
		valueBlock("v1", []string{"a"}),
		valueBlock("v2", []string{"b"}),
		wordBlock("w1", "Name:"),
		wordBlock("w2", "Name"),
		wordBlock("a", "first"),
		wordBlock("b", "second"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if len(pairs) != 1 || pairs["Name"] != "second" {
		t.Errorf("expected last write to win, got %v", pairs)
	}
}

func TestKeyValuePairs_IgnoresNonKeyBlocks(t *testing.T) {
	blocks := []analysis.Block{
		valueBlock("v1", []string{"w1"}),
		{ID: "l1", BlockType: analysis.BlockTypeLine, Text: "Name: John"},
		wordBlock("w1", "John"),
	}
	pairs := KeyValuePairs(blocks, BuildIndex(blocks))
	if len(pairs) != 0 {
		t.Errorf("expected no pairs from VALUE/LINE blocks, got %v", pairs)
	}
}

func TestRawText_LineCountMatchesLineBlocks(t *testing.T) {
	blocks := []analysis.Block{
		{ID: "l1", BlockType: analysis.BlockTypeLine, Text: "first"},
		wordBlock("w1", "not a line"),
		{ID: "l2", BlockType: analysis.BlockTypeLine},
		{ID: "l3", BlockType: analysis.BlockTypeLine, Text: "third"},
	}
	text := RawText(blocks)
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), text)
	}
	want := []string{"first", "", "third"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestRawText_Empty(t *testing.T) {
	if got := RawText(nil); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestInterpret_SingleLineDocument(t *testing.T) {
	blocks := []analysis.Block{
		{ID: "l1", BlockType: analysis.BlockTypeLine, Text: "Patient is blind in left eye"},
	}
	res := Interpret(blocks)
	if res.RawText != "Patient is blind in left eye" {
		t.Errorf("unexpected raw text %q", res.RawText)
	}
	if res.BlockCount != 1 {
		t.Errorf("expected block count 1, got %d", res.BlockCount)
	}
	if len(res.Pairs) != 0 {
		t.Errorf("expected no pairs, got %v", res.Pairs)
	}
}

func TestInterpret_EmptyCollection(t *testing.T) {
	res := Interpret(nil)
	if len(res.Pairs) != 0 || res.RawText != "" || res.BlockCount != 0 {
		t.Errorf("expected zero-value result, got %+v", res)
	}
}
