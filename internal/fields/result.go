// Package fields turns free-text posting fields into typed values.
//
// Every parser is total: it never returns an error. When the input cannot be
// interpreted the parser returns its documented default with Defaulted set, so
// callers can tell a confirmed value from a fallback.
package fields

// Result carries a parsed value and whether it was produced by a fallback.
type Result[T any] struct {
	Value     T
	Defaulted bool
}

// Parsed wraps a value extracted from the input.
func Parsed[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Default wraps the fallback value used when the input could not be parsed.
func Default[T any](v T) Result[T] {
	return Result[T]{Value: v, Defaulted: true}
}

// OrElse returns the parsed value, or fallback when the result was defaulted.
func (r Result[T]) OrElse(fallback T) T {
	if r.Defaulted {
		return fallback
	}
	return r.Value
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
