package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-person",
		Description: "A person",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []string{"A", "B", "C"}},
			},
			"required": []string{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"all fields", `{"name":"Alice","age":10,"grade":"A"}`, true},
		{"optional omitted", `{"name":"Bob","age":8}`, true},
		{"missing required", `{"name":"Charlie"}`, false},
		{"wrong type", `{"name":"Dave","age":"ten"}`, false},
		{"below minimum", `{"name":"Dave","age":-1}`, false},
		{"outside enum", `{"name":"Eve","age":9,"grade":"D"}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var inv *InvalidResponseError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`whatever`)))
}

func TestValidateResponseNested(t *testing.T) {
	s := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"options": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items": map[string]any{
						"type":     "object",
						"required": []string{"value", "score"},
						"properties": map[string]any{
							"value": map[string]any{"type": "string"},
							"score": map[string]any{"type": "integer"},
						},
					},
				},
			},
			"required": []string{"options"},
		},
	}

	assert.NoError(t, validateResponse(s, json.RawMessage(`{"options":[{"value":"a","score":0},{"value":"b","score":-2}]}`)))
	assert.Error(t, validateResponse(s, json.RawMessage(`{"options":[{"value":"a","score":0}]}`)))
	assert.Error(t, validateResponse(s, json.RawMessage(`{"options":[{"value":"a","score":1.5},{"value":"b","score":2}]}`)))
}
