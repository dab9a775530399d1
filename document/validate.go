package document

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validate checks that every components.schemas entry compiles as a schema,
// resolving internal $refs against the document itself. It is a best-effort
// structural check, not full OpenAPI conformance.
func (d *Document) Validate() error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("document: marshal: %w", err)
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("document: unmarshal: %w", err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("document: unexpected shape %T", raw)
	}
	return ValidateSpec(m)
}

// ValidateSpec is Validate over an already-decoded document value, as
// produced by Load.
func ValidateSpec(doc map[string]any) error {
	components, _ := doc["components"].(map[string]any)
	schemas, _ := components["schemas"].(map[string]any)
	if len(schemas) == 0 {
		return nil
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("doc.json", doc); err != nil {
		return fmt.Errorf("document: add resource: %w", err)
	}
	for name := range schemas {
		if _, err := c.Compile("doc.json#/components/schemas/" + name); err != nil {
			return fmt.Errorf("document: schema %q: %w", name, err)
		}
	}
	return nil
}
