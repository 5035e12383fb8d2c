package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"golang.org/x/text/cases"
)

// outcome classifies one accessor resolution.
type outcome int

const (
	resolved outcome = iota
	missing          // nil value: no match, sorts last
	faulted          // panic or unusable value: same as missing, but counted
)

// resolver resolves column values for one recompute and counts contained faults.
// It holds no state across rows other than the fault counter.
type resolver[T any] struct {
	folder cases.Caser
	faults int
}

func (r *resolver[T]) note(o outcome) {
	if o == faulted {
		r.faults++
	}
}

// value returns the accessor value of col for row.
func (r *resolver[T]) value(col *Column[T], row T) (any, bool) {
	if col.Accessor == nil {
		s, ok := r.text(col, row)
		return s, ok
	}
	v, o := resolveValue(col.Accessor, row)
	r.note(o)
	return v, o == resolved
}

// text returns the string projection of col for row.
func (r *resolver[T]) text(col *Column[T], row T) (string, bool) {
	if col.Text != nil {
		s, ok := safeCall(col.Text, row)
		if !ok {
			r.note(faulted)
			return "", false
		}
		return s, true
	}
	v, o := resolveValue(col.Accessor, row)
	if o != resolved {
		r.note(o)
		return "", false
	}
	s, ok := stringify(v)
	if !ok {
		r.note(faulted)
		return "", false
	}
	return s, true
}

// sortValue returns the value compared by the sort engine. Structured values
// fall back to the column's string projection unless a comparator override is
// configured.
func (r *resolver[T]) sortValue(col *Column[T], row T) (any, bool) {
	v, ok := r.value(col, row)
	if !ok {
		return nil, false
	}
	if col.Compare != nil || isPrimitive(v) {
		return v, true
	}
	if col.Text == nil {
		r.note(faulted)
		return nil, false
	}
	return r.text(col, row)
}

// fold normalizes a string for case-insensitive matching.
func (r *resolver[T]) fold(s string) string {
	return r.folder.String(s)
}

// safeCall invokes fn and converts a panic into ok=false.
func safeCall[T, R any](fn func(T) R, row T) (out R, ok bool) {
	defer func() {
		if recover() != nil {
			var zero R
			out, ok = zero, false
		}
	}()
	return fn(row), true
}

// resolveValue calls an accessor and dereferences a single pointer level, so
// nullable fields like *time.Time resolve to their value or to missing.
func resolveValue[T any](accessor func(T) any, row T) (any, outcome) {
	v, ok := safeCall(accessor, row)
	if !ok {
		return nil, faulted
	}
	if v == nil {
		return nil, missing
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, missing
		}
		if rv.Kind() == reflect.Pointer {
			return rv.Elem().Interface(), resolved
		}
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, missing
		}
	}
	return v, resolved
}

// isPrimitive reports whether v has a natural string projection.
func isPrimitive(v any) bool {
	if _, ok := v.(time.Time); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	_, ok := v.(fmt.Stringer)
	return ok
}

// stringify projects a primitive value to the string used for search and
// filter. Structured values are refused rather than flattened.
func stringify(v any) (string, bool) {
	if t, ok := v.(time.Time); ok {
		return formatTime(t), true
	}
	if s, ok := v.(fmt.Stringer); ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return s.String(), true
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true
	}
	return "", false
}

// formatTime renders date-only values as YYYY-MM-DD and everything else as RFC 3339.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
