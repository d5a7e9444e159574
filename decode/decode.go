// Package decode checks untyped JSON values against declarative schemas
// and narrows them to Go types.
//
// Inputs are the values encoding/json produces when decoding into an any:
// map[string]any, []any, string, float64 or json.Number, bool and nil.
// Validators are composed from small pieces (ArrayOf, Optional, Object,
// Tagged) and report failures by path instead of stopping at the first one.
package decode

import (
	"encoding/json"
	"math"
)

type undefined struct{}

// Undefined stands in for an object member that is not present. It is
// distinct from nil, which is a JSON null.
var Undefined any = undefined{}

// Validator checks an input value and narrows it to T.
// A non-empty error slice means the returned T must not be used.
type Validator[T any] interface {
	// Describe names the accepted shape, as used in "expected ..." messages
	Describe() string
	Validate(input any, path Path) (T, []FieldError)
}

type validatorFunc[T any] struct {
	desc string
	fn   func(input any, path Path) (T, []FieldError)
}

func (v validatorFunc[T]) Describe() string { return v.desc }

func (v validatorFunc[T]) Validate(input any, path Path) (T, []FieldError) {
	return v.fn(input, path)
}

// New builds a Validator from a description and a check function
func New[T any](desc string, fn func(input any, path Path) (T, []FieldError)) Validator[T] {
	return validatorFunc[T]{desc: desc, fn: fn}
}

// Schema is a validator together with the label used as the root of every
// reported path.
type Schema[T any] struct {
	Label     string
	Validator Validator[T]
}

// NewSchema labels a validator
func NewSchema[T any](label string, v Validator[T]) Schema[T] {
	return Schema[T]{Label: label, Validator: v}
}

// Decode validates input against s. On failure the zero T is returned
// together with a *ValidationError listing every problem found.
func Decode[T any](s Schema[T], input any) (T, error) {
	v, errs := s.Validator.Validate(input, Path(s.Label))
	if len(errs) > 0 {
		var zero T
		return zero, &ValidationError{Errors: errs}
	}
	return v, nil
}

// String accepts any JSON string
func String() Validator[string] {
	return New("string", func(input any, path Path) (string, []FieldError) {
		s, ok := input.(string)
		if !ok {
			return "", mismatch(path, "string", input)
		}
		return s, nil
	})
}

// NonEmptyString accepts a JSON string with at least one character
func NonEmptyString() Validator[string] {
	return New("non-empty string", func(input any, path Path) (string, []FieldError) {
		s, ok := input.(string)
		if !ok || s == "" {
			return "", mismatch(path, "non-empty string", input)
		}
		return s, nil
	})
}

// Bool accepts true or false
func Bool() Validator[bool] {
	return New("boolean", func(input any, path Path) (bool, []FieldError) {
		b, ok := input.(bool)
		if !ok {
			return false, mismatch(path, "boolean", input)
		}
		return b, nil
	})
}

// Literal accepts exactly the string want
func Literal(want string) Validator[string] {
	desc := `"` + want + `"`
	return New(desc, func(input any, path Path) (string, []FieldError) {
		s, ok := input.(string)
		if !ok || s != want {
			return "", mismatch(path, desc, input)
		}
		return s, nil
	})
}

// Number accepts any JSON number
func Number() Validator[float64] {
	return New("number", func(input any, path Path) (float64, []FieldError) {
		f, ok := toFloat(input)
		if !ok {
			return 0, mismatch(path, "number", input)
		}
		return f, nil
	})
}

// Int64 accepts any JSON number within the int64 range. Integral-ness is
// not enforced: a fractional value is truncated toward zero.
func Int64() Validator[int64] {
	return New("number", func(input any, path Path) (int64, []FieldError) {
		if n, ok := input.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
		f, ok := toFloat(input)
		if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, mismatch(path, "number", input)
		}
		return int64(f), nil
	})
}

// Int is Int64 narrowed to int; values outside the int range are rejected
func Int() Validator[int] {
	base := Int64()
	return New(base.Describe(), func(input any, path Path) (int, []FieldError) {
		i, errs := base.Validate(input, path)
		if len(errs) > 0 {
			return 0, errs
		}
		if i < math.MinInt || i > math.MaxInt {
			return 0, mismatch(path, "number", input)
		}
		return int(i), nil
	})
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
