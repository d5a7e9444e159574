package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path names a location inside a decoded value, e.g. item.parts[2]
type Path string

// Key returns the path of an object member
func (p Path) Key(key string) Path {
	if p == "" {
		return Path(key)
	}
	return Path(string(p) + "." + key)
}

// Index returns the path of an array element
func (p Path) Index(i int) Path {
	return Path(fmt.Sprintf("%s[%d]", p, i))
}

func (p Path) String() string {
	if p == "" {
		return "<root>"
	}
	return string(p)
}

// FieldError is a single failed check at one path
type FieldError struct {
	Path     Path
	Expected string
	Got      string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

// ValidationError reports every check that failed while decoding one value.
// Errors is never empty.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if len(e.Errors) == 1 {
		b.WriteString("validation failed (1 issue):")
	} else {
		fmt.Fprintf(&b, "validation failed (%d issues):", len(e.Errors))
	}
	for _, fe := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(fe.String())
	}
	return b.String()
}

// Paths returns the failing paths in report order
func (e *ValidationError) Paths() []string {
	paths := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		paths[i] = string(fe.Path)
	}
	return paths
}

// AsValidationError unwraps err to a *ValidationError if it carries one
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func mismatch(path Path, expected string, got any) []FieldError {
	return []FieldError{{Path: path, Expected: expected, Got: describe(got)}}
}

// describe renders an input value for diagnostics. Objects and arrays are
// named rather than dumped.
func describe(v any) string {
	switch x := v.(type) {
	case undefined:
		return "undefined"
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
