package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError describes one validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result holds the outcome of validating one request. Either the typed
// values or the error list is populated, never both.
type Result struct {
	values map[string]any
	errs   []FieldError
}

// Valid reports whether validation passed.
func (r Result) Valid() bool { return len(r.errs) == 0 }

// Errors returns all collected field errors.
func (r Result) Errors() []FieldError { return r.errs }

// Int returns the coerced integer value of a field.
// Only meaningful on a valid result.
func (r Result) Int(name string) int64 {
	v, _ := r.values[name].(int64)
	return v
}

// String returns the string value of a field.
func (r Result) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

func (r *Result) addError(field, message string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: message})
}

// Validate checks raw input against the schema. Coercion failures and
// constraint failures are both collected as field errors, so one response
// can report every invalid field at once. On success the result carries
// typed values safe to use directly in downstream queries.
func (s Schema) Validate(raw map[string]string) Result {
	res := Result{values: make(map[string]any, len(s.Fields))}

	if s.Closed {
		declared := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			declared[f.Name] = true
		}
		for name := range raw {
			if !declared[name] {
				res.addError(name, "unknown field")
			}
		}
	}

	for _, f := range s.Fields {
		value, ok := raw[f.Name]
		if !ok || value == "" {
			if f.Required {
				res.addError(f.Name, "field is required")
			}
			continue
		}

		switch f.Kind {
		case KindInt:
			s.validateInt(&res, f, value)
		case KindString:
			s.validateString(&res, f, value)
		case KindEnum:
			s.validateEnum(&res, f, value)
		}
	}

	return res
}

func (s Schema) validateInt(res *Result, f Field, value string) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		res.addError(f.Name, "must be an integer")
		return
	}
	if f.Positive && n <= 0 {
		res.addError(f.Name, "must be a positive integer")
		return
	}
	if f.Min != nil && n < *f.Min {
		res.addError(f.Name, fmt.Sprintf("must be at least %d", *f.Min))
		return
	}
	if f.Max != nil && n > *f.Max {
		res.addError(f.Name, fmt.Sprintf("must be at most %d", *f.Max))
		return
	}
	res.values[f.Name] = n
}

func (s Schema) validateString(res *Result, f Field, value string) {
	if f.MinLength > 0 && len(value) < f.MinLength {
		res.addError(f.Name, fmt.Sprintf("must be at least %d characters", f.MinLength))
		return
	}
	if f.MaxLength > 0 && len(value) > f.MaxLength {
		res.addError(f.Name, fmt.Sprintf("must be at most %d characters", f.MaxLength))
		return
	}
	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		res.addError(f.Name, fmt.Sprintf("must match pattern %s", f.Pattern.String()))
		return
	}
	res.values[f.Name] = value
}

func (s Schema) validateEnum(res *Result, f Field, value string) {
	for _, v := range f.Values {
		if v == value {
			res.values[f.Name] = value
			return
		}
	}
	res.addError(f.Name, fmt.Sprintf("must be one of: %s", strings.Join(f.Values, ", ")))
}
