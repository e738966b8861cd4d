// Package schema provides declarative request validation.
//
// A Schema describes the fields a route expects: their kind, coercion
// rule and constraints. Schemas are built once at route registration and
// never mutated; Validate is a pure function over its inputs.
package schema

import "regexp"

// Kind identifies the coerced type of a field.
type Kind string

const (
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindEnum   Kind = "enum"
)

// Field declares one expected input field and its constraints.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Numeric constraints (KindInt).
	Positive bool
	Min      *int64
	Max      *int64

	// String constraints (KindString).
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp

	// Valid values (KindEnum).
	Values []string
}

// Schema is the set of fields a route accepts.
type Schema struct {
	Fields []Field

	// Closed rejects input fields that are not declared in the schema.
	// Open schemas ignore unknown fields for forward compatibility.
	Closed bool
}

// PositiveInt declares a required integer field that must be > 0.
// This is the shape of every numeric resource ID in the API.
func PositiveInt(name string) Field {
	return Field{Name: name, Kind: KindInt, Required: true, Positive: true}
}

// Int declares a required integer field.
func Int(name string) Field {
	return Field{Name: name, Kind: KindInt, Required: true}
}

// String declares a required string field.
func String(name string) Field {
	return Field{Name: name, Kind: KindString, Required: true}
}

// Enum declares a required field restricted to the given values.
func Enum(name string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Required: true, Values: values}
}

// Optional returns a copy of the field marked as optional.
func (f Field) Optional() Field {
	f.Required = false
	return f
}

// IntRange returns a copy of the field bounded to [min, max].
func (f Field) IntRange(min, max int64) Field {
	f.Min = &min
	f.Max = &max
	return f
}
