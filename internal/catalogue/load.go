package catalogue

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// MinSchemaVersion and MaxSchemaVersion bound the schema_version values
// this build accepts, checked with golang.org/x/mod/semver so a future
// incompatible catalogue format fails loudly instead of silently
// misparsing (SPEC_FULL.md §4.8).
const (
	MinSchemaVersion = "v1.0.0"
	MaxSchemaVersion = "v1.999.999"
)

// document mirrors the YAML shape SPEC_FULL.md §4.8 documents. Decoded
// twice: once into this typed struct (for Build), once into a generic
// map[string]any (for jsonschema validation, which wants plain JSON-ish
// values rather than a Go struct).
type document struct {
	SchemaVersion string `yaml:"schema_version"`
	Operators     []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		Priority int    `yaml:"priority"`
	} `yaml:"operators"`
}

var compiledSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalogue.json", bytes.NewReader([]byte(catalogueSchema))); err != nil {
		panic(fmt.Sprintf("catalogue: invalid embedded schema: %v", err))
	}
	schema, err := compiler.Compile("catalogue.json")
	if err != nil {
		panic(fmt.Sprintf("catalogue: embedded schema does not compile: %v", err))
	}
	return schema
}()

// LoadFile reads, validates, and builds a Catalogue from a YAML document at
// path, per SPEC_FULL.md §4.8: YAML parse, JSON-Schema validation, then a
// schema_version compatibility check, in that order, before Build ever
// sees the entries.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: reading %s: %w", path, err)
	}
	return load(data)
}

func load(data []byte) (*Catalogue, error) {
	// Validate structurally first, against a generic decode, so a
	// malformed document is rejected with a schema-shaped error rather
	// than a confusing zero-value struct.
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("catalogue: parsing yaml: %w", err)
	}
	if err := compiledSchema.Validate(toJSONLike(generic)); err != nil {
		return nil, fmt.Errorf("catalogue: schema validation: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalogue: decoding yaml: %w", err)
	}

	version := "v" + doc.SchemaVersion
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("catalogue: invalid schema_version %q", doc.SchemaVersion)
	}
	if semver.Compare(version, MinSchemaVersion) < 0 || semver.Compare(version, MaxSchemaVersion) > 0 {
		return nil, fmt.Errorf("catalogue: schema_version %s is outside supported range [%s, %s]",
			doc.SchemaVersion, MinSchemaVersion, MaxSchemaVersion)
	}

	entries := make([]Info, 0, len(doc.Operators))
	for _, op := range doc.Operators {
		category := Infix
		if op.Category == "prefix" {
			category = Prefix
		}
		entries = append(entries, Info{Name: op.Name, Category: category, Priority: op.Priority})
	}
	return Build(entries), nil
}

// toJSONLike recursively converts yaml.v3's decoded map[string]any (whose
// nested maps come back as map[string]any too, but with key types that
// can diverge from encoding/json's expectations for some edge cases) into
// a representation jsonschema.Validate accepts unconditionally.
func toJSONLike(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = toJSONLike(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = toJSONLike(v)
		}
		return out
	default:
		return val
	}
}
