package decode

// Option holds a value that may be absent. The zero value is absent.
type Option[T any] struct {
	value T
	set   bool
}

// Some returns a present Option holding v
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

// None returns an absent Option
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present
func (o Option[T]) IsSet() bool {
	return o.set
}

// Or returns the value if present, def otherwise
func (o Option[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}
