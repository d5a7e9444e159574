package decode

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

type pair struct {
	Name  string
	Count int
	Note  Option[string]
}

var pairSchema = NewSchema("pair", Object("Pair", func(o *Fields) pair {
	return pair{
		Name:  Field(o, "name", NonEmptyString()),
		Count: Field(o, "count", Int()),
		Note:  Field(o, "note", Optional(String())),
	}
}))

func TestPrimitives(t *testing.T) {
	s, errs := String().Validate("x", "")
	assert.Empty(t, errs)
	assert.Equal(t, "x", s)

	_, errs = NonEmptyString().Validate("", "name")
	require.Len(t, errs, 1)
	assert.Equal(t, `name: expected non-empty string, got ""`, errs[0].String())

	b, errs := Bool().Validate(true, "")
	assert.Empty(t, errs)
	assert.True(t, b)

	_, errs = Bool().Validate(nil, "flag")
	require.Len(t, errs, 1)
	assert.Equal(t, "null", errs[0].Got)

	_, errs = Literal("story").Validate("job", "type")
	require.Len(t, errs, 1)
	assert.Equal(t, `"story"`, errs[0].Expected)
}

func TestNumbersAreLoose(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want int
	}{
		{json.Number("3"), 3},
		{json.Number("3.0"), 3},
		{json.Number("3.7"), 3},
		{float64(42), 42},
		{7, 7},
	} {
		t.Run(fmt.Sprint(tc.in), func(t *testing.T) {
			got, errs := Int().Validate(tc.in, "n")
			assert.Empty(t, errs)
			assert.Equal(t, tc.want, got)
		})
	}

	f, errs := Number().Validate(json.Number("2.5"), "n")
	assert.Empty(t, errs)
	assert.Equal(t, 2.5, f)

	big, errs := Int64().Validate(json.Number("9007199254740993"), "n")
	assert.Empty(t, errs)
	assert.Equal(t, int64(9007199254740993), big)

	_, errs = Int().Validate("3", "n")
	require.Len(t, errs, 1)
	assert.Equal(t, `n: expected number, got "3"`, errs[0].String())
}

func TestNumbersOutOfRange(t *testing.T) {
	for _, in := range []any{
		json.Number("1e20"),
		json.Number("9223372036854775808"),
		json.Number("-1e19"),
		float64(1e20),
		float64(-1e20),
		math.Inf(1),
	} {
		t.Run(fmt.Sprint(in), func(t *testing.T) {
			n, errs := Int64().Validate(in, "n")
			require.Len(t, errs, 1)
			assert.Equal(t, Path("n"), errs[0].Path)
			assert.Equal(t, "number", errs[0].Expected)
			assert.Zero(t, n)

			i, errs := Int().Validate(in, "n")
			require.Len(t, errs, 1)
			assert.Zero(t, i)
		})
	}

	edge, errs := Int64().Validate(json.Number("-9223372036854775808"), "n")
	assert.Empty(t, errs)
	assert.Equal(t, int64(math.MinInt64), edge)

	edge, errs = Int64().Validate(json.Number("9223372036854775807"), "n")
	assert.Empty(t, errs)
	assert.Equal(t, int64(math.MaxInt64), edge)
}

func TestArrayReportsEveryBadElement(t *testing.T) {
	_, errs := ArrayOf(Int()).Validate(parse(t, `[1, "two", 3, null]`), "parts")
	require.Len(t, errs, 2)
	assert.Equal(t, Path("parts[1]"), errs[0].Path)
	assert.Equal(t, Path("parts[3]"), errs[1].Path)

	got, errs := ArrayOf(Int()).Validate(parse(t, `[]`), "parts")
	assert.Empty(t, errs)
	assert.Empty(t, got)

	_, errs = ArrayOf(Int()).Validate(parse(t, `{}`), "parts")
	require.Len(t, errs, 1)
	assert.Equal(t, "Array<number>", errs[0].Expected)
	assert.Equal(t, "object", errs[0].Got)
}

func TestOptional(t *testing.T) {
	omitted, err := Decode(pairSchema, parse(t, `{"name":"a","count":1}`))
	require.NoError(t, err)
	assert.False(t, omitted.Note.IsSet())
	assert.Equal(t, "none", omitted.Note.Or("none"))

	present, err := Decode(pairSchema, parse(t, `{"name":"a","count":1,"note":"hi"}`))
	require.NoError(t, err)
	note, ok := present.Note.Get()
	assert.True(t, ok)
	assert.Equal(t, "hi", note)
	assert.Equal(t, omitted.Name, present.Name)
	assert.Equal(t, omitted.Count, present.Count)

	_, err = Decode(pairSchema, parse(t, `{"name":"a","count":1,"note":5}`))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, FieldError{Path: "pair.note", Expected: "string | undefined", Got: "5"}, verr.Errors[0])

	_, err = Decode(pairSchema, parse(t, `{"name":"a","count":1,"note":null}`))
	verr, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "null", verr.Errors[0].Got)
}

func TestObjectCollectsAllFailures(t *testing.T) {
	got, err := Decode(pairSchema, parse(t, `{"count":"many","note":false}`))
	require.Error(t, err)
	assert.Equal(t, pair{}, got)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"pair.name", "pair.count", "pair.note"}, verr.Paths())
	assert.Equal(t, "undefined", verr.Errors[0].Got)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "validation failed (3 issues):\n"))
	assert.Contains(t, msg, "\n  pair.name: expected non-empty string, got undefined")
	assert.Contains(t, msg, "\n  pair.count: expected number, got \"many\"")
}

func TestObjectIgnoresUndeclaredMembers(t *testing.T) {
	got, err := Decode(pairSchema, parse(t, `{"name":"a","count":2,"extra":{"deep":[1]}}`))
	require.NoError(t, err)
	assert.Equal(t, pair{Name: "a", Count: 2}, got)
}

func TestObjectRejectsNonObject(t *testing.T) {
	_, err := Decode(pairSchema, parse(t, `[1,2]`))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, FieldError{Path: "pair", Expected: "object", Got: "array"}, verr.Errors[0])
}

type shape interface{ area() int }

type square struct{ Side int }

func (s square) area() int { return s.Side * s.Side }

type rect struct{ W, H int }

func (r rect) area() int { return r.W * r.H }

var shapeSchema = NewSchema("shape", Tagged("kind",
	Variant[shape]{Tag: "square", Validator: Object("Square", func(o *Fields) shape {
		return square{Side: Field(o, "side", Int())}
	})},
	Variant[shape]{Tag: "rect", Validator: Object("Rect", func(o *Fields) shape {
		return rect{W: Field(o, "w", Int()), H: Field(o, "h", Int())}
	})},
))

func TestTaggedDispatch(t *testing.T) {
	s, err := Decode(shapeSchema, parse(t, `{"kind":"rect","w":2,"h":3}`))
	require.NoError(t, err)
	assert.Equal(t, rect{W: 2, H: 3}, s)
	assert.Equal(t, 6, s.area())

	// a square body under the rect tag must not fall back to square
	_, err = Decode(shapeSchema, parse(t, `{"kind":"rect","side":2}`))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"shape.w", "shape.h"}, verr.Paths())
}

func TestTaggedBadTag(t *testing.T) {
	for name, body := range map[string]string{
		"unknown":    `{"kind":"circle","side":2}`,
		"missing":    `{"side":2}`,
		"not string": `{"kind":1,"side":2}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(shapeSchema, parse(t, body))
			verr, ok := AsValidationError(err)
			require.True(t, ok)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, Path("shape.kind"), verr.Errors[0].Path)
			assert.Equal(t, `"square" | "rect"`, verr.Errors[0].Expected)
		})
	}

	_, err := Decode(shapeSchema, nil)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, FieldError{Path: "shape", Expected: "Square | Rect", Got: "null"}, verr.Errors[0])
}

func TestTaggedDuplicateTagPanics(t *testing.T) {
	v := Object("Square", func(o *Fields) shape { return square{} })
	assert.Panics(t, func() {
		Tagged("kind", Variant[shape]{Tag: "a", Validator: v}, Variant[shape]{Tag: "a", Validator: v})
	})
}

func TestPath(t *testing.T) {
	assert.Equal(t, Path("item.parts[2]"), Path("item").Key("parts").Index(2))
	assert.Equal(t, Path("type"), Path("").Key("type"))
	assert.Equal(t, "<root>", Path("").String())
}
