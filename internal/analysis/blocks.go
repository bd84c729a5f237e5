package analysis

// Block types returned by the analysis service.
const (
	BlockTypePage             = "PAGE"
	BlockTypeLine             = "LINE"
	BlockTypeWord             = "WORD"
	BlockTypeKeyValueSet      = "KEY_VALUE_SET"
	BlockTypeSelectionElement = "SELECTION_ELEMENT"
	BlockTypeTable            = "TABLE"
	BlockTypeCell             = "CELL"
)

// Relationship types.
const (
	RelationshipChild = "CHILD"
	RelationshipValue = "VALUE"
)

// Entity types tagged on KEY_VALUE_SET blocks.
const (
	EntityTypeKey   = "KEY"
	EntityTypeValue = "VALUE"
)

// Selection statuses on SELECTION_ELEMENT blocks.
const (
	SelectionSelected    = "SELECTED"
	SelectionNotSelected = "NOT_SELECTED"
)

// Block is one annotated node in the analysis response. Blocks reference
// each other by ID through Relationships; they never embed other blocks.
type Block struct {
	ID              string         `json:"Id"`
	BlockType       string         `json:"BlockType"`
	Text            string         `json:"Text,omitempty"`
	SelectionStatus string         `json:"SelectionStatus,omitempty"`
	EntityTypes     []string       `json:"EntityTypes,omitempty"`
	Relationships   []Relationship `json:"Relationships,omitempty"`
	Confidence      float64        `json:"Confidence,omitempty"`
	Page            int            `json:"Page,omitempty"`
}

// Relationship is a typed edge from a block to an ordered list of block IDs.
type Relationship struct {
	Type string   `json:"Type"`
	IDs  []string `json:"Ids"`
}

// HasEntityType reports whether the block carries the given entity tag.
func (b Block) HasEntityType(et string) bool {
	for _, t := range b.EntityTypes {
		if t == et {
			return true
		}
	}
	return false
}

// Related returns the ID list of the first relationship of the given type,
// or nil if the block has no such relationship.
func (b Block) Related(relType string) []string {
	for _, r := range b.Relationships {
		if r.Type == relType {
			return r.IDs
		}
	}
	return nil
}

// DocumentMetadata is passed through to callers unmodified.
type DocumentMetadata struct {
	Pages int `json:"Pages"`
}
