package catalogue

// catalogueSchema is the JSON Schema a loaded catalogue document must
// satisfy before internal/catalogue.Build ever sees it. Keeping it here as
// a Go string (rather than a separate .json asset) avoids a go:embed
// dependency the rest of the corpus doesn't otherwise need.
const catalogueSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "operators"],
  "properties": {
    "schema_version": {
      "type": "string",
      "pattern": "^[0-9]+\\.[0-9]+\\.[0-9]+$"
    },
    "operators": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category", "priority"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "category": { "enum": ["prefix", "infix"] },
          "priority": { "type": "integer", "minimum": 0 }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
