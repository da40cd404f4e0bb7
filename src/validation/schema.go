package validation

import (
	"github.com/invopop/jsonschema"

	"github.com/ogri-la/card-list-validator-go/src/catalog"
)

// schemaURL is the in-memory resource name the compiled schema is registered under
const schemaURL = "card-list.schema.json"

// Schema reflects the JSON Schema of a catalog document from the catalog struct tags.
// Fields without `omitempty` are required. In strict mode unknown keys are rejected.
func Schema(strict bool) *jsonschema.Schema {
	r := jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: !strict,
	}
	s := r.Reflect(&catalog.CardList{})
	s.Title = "card list"
	s.Description = "A trading-card product catalog: sets of cards with notes, parallels, variations and insert odds."
	return s
}
