package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var compiled sync.Map // schema name -> *jsonschema.Schema

// validateResponse checks raw against s. A nil schema accepts anything.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	sch, err := compileSchema(s)
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	return nil
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// Round-trip so Go-typed values ([]string, int) become the generic
	// JSON values the compiler expects.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	v, _ := compiled.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}
