package catalog

// Field order in each struct is the output key order. Required fields are plain
// values, optional fields are pointers tagged `omitempty`:
//   - nil pointer: field was absent and is never emitted
//   - pointer to an empty slice: field was present as `[]` and is emitted as `[]`
//
// Present slices must be non-nil, a pointer to a nil slice encodes as `null`.

// CardList represents the root of a catalog document
type CardList struct {
	Name       string           `json:"name"`
	Notes      *[]string        `json:"notes,omitempty"`
	Attributes *[]AttributeItem `json:"attributes,omitempty"`
	Sets       []Set            `json:"sets"`
}

// AttributeItem defines an attribute used by cards in this catalog
type AttributeItem struct {
	Attribute string `json:"attribute"`
	Note      string `json:"note"`
}

// Set represents a named grouping of cards, usually one product release
type Set struct {
	Name       string       `json:"name"`
	Notes      *[]string    `json:"notes,omitempty"`
	NumberedTo *uint32      `json:"numberedTo,omitempty" jsonschema:"minimum=0,maximum=4294967295"`
	InsertOdds *[]InsertOdd `json:"insertOdds,omitempty"`
	Variations *[]Variation `json:"variations,omitempty"`
	Parallels  *[]Parallel  `json:"parallels,omitempty"`
	Cards      []Card       `json:"cards"`
}

// InsertOdd pairs a product with its printed odds, e.g. "Hobby" and "1:24"
type InsertOdd struct {
	Product string `json:"product"`
	Odds    string `json:"odds"`
}

// Variation represents an alternate version of a card
type Variation struct {
	Variation  string       `json:"variation"`
	Note       *string      `json:"note,omitempty"`
	InsertOdds *[]InsertOdd `json:"insertOdds,omitempty"`
	Parallels  *[]Parallel  `json:"parallels,omitempty"`
}

// Parallel represents a stylistic or rarity variant of a card or set
type Parallel struct {
	Name       string       `json:"name"`
	NumberedTo *uint32      `json:"numberedTo,omitempty" jsonschema:"minimum=0,maximum=4294967295"`
	Notes      *[]string    `json:"notes,omitempty"`
	InsertOdds *[]InsertOdd `json:"insertOdds,omitempty"`
}

// Card represents an individual card within a set
type Card struct {
	Name       string       `json:"name"`
	Number     *string      `json:"number,omitempty"`
	Attributes *[]string    `json:"attributes,omitempty"`
	Note       *string      `json:"note,omitempty"`
	Variations *[]Variation `json:"variations,omitempty"`
	Parallels  *[]Parallel  `json:"parallels,omitempty"`
}

// Ptr returns a pointer to v, for building optional fields
func Ptr[T any](v T) *T {
	return &v
}

// Value returns the value behind an optional field, or the zero value when absent
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
