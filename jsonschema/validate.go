package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	sj "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies exported schemas inside the validator's compiler.
const SchemaURL = "https://statecanon.local/document.schema.json"

// Validator checks encoded documents against an exported Schema.
type Validator struct {
	compiled *sj.Schema
}

// Compile prepares s for validation.
func Compile(s *Schema) (*Validator, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	c := sj.NewCompiler()
	c.Draft = sj.Draft2020
	if err := c.AddResource(SchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate decodes doc and validates it. The returned error is a
// *sj.ValidationError when doc decodes but does not conform.
func (v *Validator) Validate(doc []byte) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return v.compiled.Validate(inst)
}

// ValidateValue validates an already decoded instance.
func (v *Validator) ValidateValue(inst any) error { return v.compiled.Validate(inst) }
