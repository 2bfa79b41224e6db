// Package jsonschema models the JSON Schema that every statecanon schema
// exports, and validates documents against it.
package jsonschema

// Draft is the dialect the exported schemas are written in.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        any    `json:"type,omitempty"` // string or []string
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Const       any    `json:"const,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"` // bool or *Schema
	MaxProperties        *int               `json:"maxProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// String returns a string schema with a default.
func String(def string) *Schema { return &Schema{Type: "string", Default: def} }

// Number returns a number schema with a default and optional bounds.
func Number(def float64, lo, hi *float64) *Schema {
	return &Schema{Type: "number", Default: def, Minimum: lo, Maximum: hi}
}

// Integer returns an integer schema with a default and optional lower bound.
func Integer(def int64, lo *float64) *Schema {
	return &Schema{Type: "integer", Default: def, Minimum: lo}
}

// Boolean returns a boolean schema with a default.
func Boolean(def bool) *Schema { return &Schema{Type: "boolean", Default: def} }

// Strings returns an array-of-strings schema.
func Strings() *Schema {
	return &Schema{Type: "array", Items: &Schema{Type: "string"}, Default: []any{}}
}

// Enum returns a string schema restricted to values.
func Enum(def string, values ...string) *Schema {
	e := make([]any, len(values))
	for i, v := range values {
		e[i] = v
	}
	return &Schema{Type: "string", Enum: e, Default: def}
}

// MapOf returns an object schema whose values all follow item. maxProps <= 0
// leaves the size unbounded.
func MapOf(item *Schema, maxProps int) *Schema {
	s := &Schema{Type: "object", AdditionalProperties: item, Default: map[string]any{}}
	if maxProps > 0 {
		s.MaxProperties = Ptr(maxProps)
	}
	return s
}

// Field names one property of an object schema.
type Field struct {
	Name   string
	Schema *Schema
}

// Object returns a closed object schema with every listed field required.
func Object(fields ...Field) *Schema {
	s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(fields)), AdditionalProperties: false}
	for _, f := range fields {
		s.Properties[f.Name] = f.Schema
		s.Required = append(s.Required, f.Name)
	}
	return s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
