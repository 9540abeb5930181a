package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var questionsSchemaDef = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"number":   map[string]any{"type": "integer", "minimum": 1},
			"question": map[string]any{"type": "string", "minLength": 1},
			"A":        map[string]any{"type": "string", "minLength": 1},
			"B":        map[string]any{"type": "string", "minLength": 1},
			"C":        map[string]any{"type": "string", "minLength": 1},
			"D":        map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"number", "question", "A", "B", "C", "D"},
	},
}

var categoriesSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"formatVersion": map[string]any{"type": "string"},
		"categories": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"id", "name"},
			},
		},
		"questionMapping": map[string]any{
			"type":                 "object",
			"propertyNames":        map[string]any{"pattern": "^[0-9]+$"},
			"additionalProperties": map[string]any{"type": "string", "minLength": 1},
		},
	},
	"required": []any{"categories", "questionMapping"},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks raw JSON against the named schema definition.
func validateDocument(name string, def map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value, so round-trip the
	// Go literal through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
