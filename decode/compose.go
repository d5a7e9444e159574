package decode

import "strings"

// ArrayOf accepts a JSON array whose every element passes elem.
// All bad elements are reported, each under its index.
func ArrayOf[T any](elem Validator[T]) Validator[[]T] {
	desc := "Array<" + elem.Describe() + ">"
	return New(desc, func(input any, path Path) ([]T, []FieldError) {
		arr, ok := input.([]any)
		if !ok {
			return nil, mismatch(path, desc, input)
		}
		out := make([]T, 0, len(arr))
		var errs []FieldError
		for i, raw := range arr {
			v, elemErrs := elem.Validate(raw, path.Index(i))
			if len(elemErrs) > 0 {
				errs = append(errs, elemErrs...)
				continue
			}
			out = append(out, v)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil
	})
}

// Optional lets v's input be missing. A missing member yields an absent
// Option; a JSON null is still checked by v and normally rejected.
func Optional[T any](v Validator[T]) Validator[Option[T]] {
	desc := v.Describe() + " | undefined"
	return New(desc, func(input any, path Path) (Option[T], []FieldError) {
		if _, ok := input.(undefined); ok {
			return None[T](), nil
		}
		val, errs := v.Validate(input, path)
		if len(errs) > 0 {
			for i := range errs {
				if errs[i].Path == path {
					errs[i].Expected = desc
				}
			}
			return None[T](), errs
		}
		return Some(val), nil
	})
}

// Fields gives an Object build function access to the members of the
// object being decoded. Failures accumulate; they never stop the build.
type Fields struct {
	members map[string]any
	path    Path
	errs    []FieldError
}

// Field validates the member key with v and returns the result. A missing
// member is passed to v as Undefined, so only Optional validators accept it.
func Field[T any](o *Fields, key string, v Validator[T]) T {
	raw, ok := o.members[key]
	if !ok {
		raw = Undefined
	}
	val, errs := v.Validate(raw, o.path.Key(key))
	o.errs = append(o.errs, errs...)
	return val
}

// Object accepts a JSON object and hands its members to build. Members that
// build does not read are ignored. The built value is discarded if any
// Field call failed.
func Object[T any](desc string, build func(o *Fields) T) Validator[T] {
	return New(desc, func(input any, path Path) (T, []FieldError) {
		var zero T
		members, ok := input.(map[string]any)
		if !ok {
			return zero, mismatch(path, "object", input)
		}
		o := &Fields{members: members, path: path}
		v := build(o)
		if len(o.errs) > 0 {
			return zero, o.errs
		}
		return v, nil
	})
}

// Variant pairs a discriminant value with the validator for that case
type Variant[T any] struct {
	Tag       string
	Validator Validator[T]
}

// Tagged accepts an object whose member field selects exactly one variant.
// A missing, non-string or unknown tag fails with a single error on the tag
// path; no variant is tried.
func Tagged[T any](field string, variants ...Variant[T]) Validator[T] {
	byTag := make(map[string]Validator[T], len(variants))
	descs := make([]string, 0, len(variants))
	tags := make([]string, 0, len(variants))
	for _, v := range variants {
		if _, dup := byTag[v.Tag]; dup {
			panic("decode: duplicate variant tag " + v.Tag)
		}
		byTag[v.Tag] = v.Validator
		descs = append(descs, v.Validator.Describe())
		tags = append(tags, `"`+v.Tag+`"`)
	}
	desc := strings.Join(descs, " | ")
	accepted := strings.Join(tags, " | ")

	return New(desc, func(input any, path Path) (T, []FieldError) {
		var zero T
		members, ok := input.(map[string]any)
		if !ok {
			return zero, mismatch(path, desc, input)
		}
		raw, present := members[field]
		if !present {
			raw = Undefined
		}
		tag, _ := raw.(string)
		v, known := byTag[tag]
		if !known {
			return zero, mismatch(path.Key(field), accepted, raw)
		}
		return v.Validate(input, path)
	})
}
