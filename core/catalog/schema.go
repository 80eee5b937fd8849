package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
)

// documentSchema describes a catalog document after YAML decoding.
const documentSchema = `{
  "type": "object",
  "required": ["version", "sections"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string", "format": "semver"},
    "sections": {"type": "array", "items": {"$ref": "#/$defs/section"}}
  },
  "$defs": {
    "section": {
      "type": "object",
      "required": ["name", "groups"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "weight": {"type": "integer"},
        "groups": {"type": "array", "items": {"$ref": "#/$defs/group"}}
      }
    },
    "group": {
      "type": "object",
      "required": ["name", "instruments"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "weight": {"type": "integer"},
        "instruments": {"type": "array", "items": {"$ref": "#/$defs/instrument"}}
      }
    },
    "instrument": {
      "type": "object",
      "required": ["id", "abbreviation"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "integer", "minimum": 1},
        "abbreviation": {"type": "string", "minLength": 1, "maxLength": 20},
        "name": {"type": "string"},
        "weight": {"type": "integer"},
        "primary": {"type": "boolean"},
        "aliases": {"type": "array", "items": {"type": "string", "minLength": 1}}
      }
    }
  }
}`

const schemaURL = "schema://catalog.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["semver"] = isSemver

		if err := compiler.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// isSemver accepts versions with or without the "v" prefix.
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true // type validation happens separately
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// validateDocument checks a YAML-decoded document against documentSchema.
// The value is re-encoded as JSON so numbers reach the validator as json.Number.
func validateDocument(raw interface{}) error {
	schema, err := documentValidator()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("catalog document is not JSON-compatible: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance interface{}
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("catalog document is not JSON-compatible: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("invalid catalog document: %w", err)
	}
	return nil
}
