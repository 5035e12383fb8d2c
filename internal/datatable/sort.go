package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// valueKind groups sort values that compare with each other. Values of
// different kinds order by kind so mixed columns still sort deterministically.
type valueKind int

const (
	kindBool valueKind = iota
	kindNumber
	kindTime
	kindString
	kindOther
)

// comparer implements the type-aware ordering: numbers numerically, strings
// by locale collation, times chronologically and false before true.
type comparer struct {
	collator *collate.Collator
}

func newComparer(tag language.Tag) *comparer {
	return &comparer{collator: collate.New(tag)}
}

func (c *comparer) compare(a, b any) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindBool:
		ab, bb := reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool()
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return compareNumbers(reflect.ValueOf(a), reflect.ValueOf(b))
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time))
	case kindString:
		return c.collator.CompareString(stringOf(a), stringOf(b))
	default:
		return c.collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func kindOf(v any) valueKind {
	if _, ok := v.(time.Time); ok {
		return kindTime
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	}
	if _, ok := v.(fmt.Stringer); ok {
		return kindString
	}
	return kindOther
}

func stringOf(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func compareNumbers(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	}
	return cmp.Compare(toFloat(a), toFloat(b))
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// safeCompare runs a comparator override. A panicking comparator treats the
// pair as equal, which keeps their upstream order.
func safeCompare(fn func(a, b any) int, a, b any) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return fn(a, b)
}

type sortEntry[T any] struct {
	row   T
	value any
	ok    bool
}

// sortRows orders rows by col in dir. Values are resolved once per row and the
// sort is stable. Rows without a value go last in either direction.
func sortRows[T any](rows []T, col *Column[T], dir SortDirection, c *comparer, r *resolver[T]) []T {
	if col == nil || dir == SortNone || len(rows) < 2 {
		return rows
	}

	entries := make([]sortEntry[T], len(rows))
	for i, row := range rows {
		v, ok := r.sortValue(col, row)
		entries[i] = sortEntry[T]{row: row, value: v, ok: ok}
	}

	slices.SortStableFunc(entries, func(a, b sortEntry[T]) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}

		var n int
		if col.Compare != nil {
			n = safeCompare(col.Compare, a.value, b.value)
		} else {
			n = c.compare(a.value, b.value)
		}
		if dir == SortDescending {
			n = -n
		}
		return n
	})

	out := make([]T, len(entries))
	for i := range entries {
		out[i] = entries[i].row
	}
	return out
}
