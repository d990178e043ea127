package protocol

// Schema is a named JSON schema for one message type.
type Schema struct {
	Name       string
	Definition map[string]any
}

var envelopeSchema = &Schema{
	Name: "envelope",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"type"},
	},
}

var problemSchema = &Schema{
	Name: "problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":    map[string]any{"const": "problem"},
			"problem": map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "integer"},
				"minItems": 4,
				"maxItems": 4,
			},
			"answer":   map[string]any{"type": "integer"},
			"points":   map[string]any{"type": "integer", "minimum": 0},
			"category": map[string]any{"type": "string"},
			"tier":     map[string]any{"type": "string"},
			"steps": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 20,
			},
		},
		"required": []any{"type", "problem", "options"},
	},
}

var answerSchema = &Schema{
	Name: "answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":    map[string]any{"const": "answer"},
			"correct": map[string]any{"type": "boolean"},
			"score":   map[string]any{"type": "integer"},
		},
		"required": []any{"type", "correct"},
	},
}

var helloSchema = &Schema{
	Name: "hello",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":    map[string]any{"const": "hello"},
			"version": map[string]any{"type": "string", "minLength": 2},
			"name":    map[string]any{"type": "string", "maxLength": 50},
		},
		"required": []any{"type", "version"},
	},
}

// schemaFor returns the schema for a message type, or nil if the type is
// unknown.
func schemaFor(t Type) *Schema {
	switch t {
	case TypeProblem:
		return problemSchema
	case TypeAnswer:
		return answerSchema
	case TypeHello:
		return helloSchema
	default:
		return nil
	}
}
