package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://sensei/recording-frame.json"

var landmarkSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"x":          map[string]any{"type": "number"},
		"y":          map[string]any{"type": "number"},
		"z":          map[string]any{"type": "number"},
		"visibility": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"required": []any{"x", "y"},
}

var frameSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"t": map[string]any{"type": "integer", "minimum": 0},
		"landmarks": map[string]any{
			"type":     "array",
			"maxItems": 33,
			"items": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "null"},
					landmarkSchema,
				},
			},
		},
		"image": map[string]any{"type": "string", "minLength": 1},
	},
	"required":             []any{"t", "landmarks"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func frameValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := json.Marshal(frameSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
