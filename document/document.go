// Package document assembles generated schema fragments into a minimal
// OpenAPI 3.0 document: components.schemas plus the info block. Paths and
// operations are out of scope; consumers merge the components into their own
// documents.
package document

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/oasbuild/oasgen"
)

// Version is the OpenAPI version emitted by Build.
const Version = "3.0.3"

// ErrDuplicateSchema indicates a schema name registered twice.
var ErrDuplicateSchema = errors.New("document: schema already registered")

// Info is the info block of a generated document.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Components holds the reusable schemas of a document.
type Components struct {
	Schemas map[string]oasgen.Fragment `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Document is an OpenAPI 3.0 document shell around generated fragments.
type Document struct {
	OpenAPI    string     `json:"openapi" yaml:"openapi"`
	Info       Info       `json:"info" yaml:"info"`
	Components Components `json:"components" yaml:"components"`
}

// Registry collects named validator trees for document assembly. It is an
// authoring-time structure and is not safe for concurrent mutation.
type Registry struct {
	names []string
	nodes map[string]oasgen.Node
}

func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]oasgen.Node)}
}

// Register adds a named schema tree. Names must be non-empty and unique.
func (r *Registry) Register(name string, n oasgen.Node) error {
	if name == "" {
		return errors.New("document: empty schema name")
	}
	if _, ok := r.nodes[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, name)
	}
	r.names = append(r.names, name)
	r.nodes[name] = n
	return nil
}

// MustRegister is Register for wiring done at program start, where a
// duplicate name is a programming error.
func (r *Registry) MustRegister(name string, n oasgen.Node) {
	if err := r.Register(name, n); err != nil {
		panic(err)
	}
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Ref returns a fragment referencing a registered schema by name, usable as
// an Extend override or a nested stand-in for a shared schema.
func Ref(name string) oasgen.Fragment {
	return oasgen.Fragment{"$ref": "#/components/schemas/" + name}
}

// Build generates every registered schema in the given mode and wraps the
// results in a Document.
func (r *Registry) Build(info Info, mode oasgen.Mode) *Document {
	schemas := make(map[string]oasgen.Fragment, len(r.names))
	for _, name := range r.names {
		schemas[name] = oasgen.Generate(r.nodes[name], mode)
	}
	return &Document{
		OpenAPI:    Version,
		Info:       info,
		Components: Components{Schemas: schemas},
	}
}

// JSON encodes the document as indented JSON with sorted object keys.
func (d *Document) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("document: encode JSON: %w", err)
	}
	return b, nil
}
