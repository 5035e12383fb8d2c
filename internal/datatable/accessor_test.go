package datatable

import (
	"net/netip"
	"testing"
	"time"
)

type level int

func TestStringify(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{name: "string", in: "Esther Howard", want: "Esther Howard", wantOK: true},
		{name: "named string", in: level(3), want: "3", wantOK: true},
		{name: "negative int", in: int64(-42), want: "-42", wantOK: true},
		{name: "uint", in: uint8(200), want: "200", wantOK: true},
		{name: "float", in: 1234.5, want: "1234.5", wantOK: true},
		{name: "float32 keeps its precision", in: float32(0.1), want: "0.1", wantOK: true},
		{name: "bool", in: true, want: "true", wantOK: true},
		{name: "date only", in: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: "2024-02-29", wantOK: true},
		{name: "timestamp", in: time.Date(2024, 2, 29, 13, 5, 0, 0, time.UTC), want: "2024-02-29T13:05:00Z", wantOK: true},
		{name: "stringer", in: netip.MustParseAddr("10.0.0.1"), want: "10.0.0.1", wantOK: true},
		{name: "struct", in: struct{ A int }{1}, wantOK: false},
		{name: "map", in: map[string]int{"a": 1}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stringify(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("stringify(%v) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveValue(t *testing.T) {
	var nilTime *time.Time
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		accessor func(person) any
		want     outcome
	}{
		{name: "plain value", accessor: func(person) any { return 1 }, want: resolved},
		{name: "nil", accessor: func(person) any { return nil }, want: missing},
		{name: "typed nil pointer", accessor: func(person) any { return nilTime }, want: missing},
		{name: "nil slice", accessor: func(person) any { return []string(nil) }, want: missing},
		{name: "pointer is dereferenced", accessor: func(person) any { return &when }, want: resolved},
		{name: "panic", accessor: func(person) any { panic("boom") }, want: faulted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := resolveValue(tt.accessor, person{}); got != tt.want {
				t.Errorf("resolveValue() outcome = %v, want %v", got, tt.want)
			}
		})
	}

	v, _ := resolveValue(func(person) any { return &when }, person{})
	if _, ok := v.(time.Time); !ok {
		t.Errorf("resolveValue(*time.Time) = %T, want time.Time", v)
	}
}
