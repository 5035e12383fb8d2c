package datatable

import (
	"fmt"
	"testing"

	"golang.org/x/text/language"
)

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func benchTable(b *testing.B, n int) *Table[person] {
	b.Helper()
	cfg := peopleConfig()
	cfg.Pagination = &Pagination{PageSize: 50, PageSizeOptions: []int{50}}
	return mustTable(b, cfg, generated(n))
}

// BenchmarkTable_Recompute measures a full search, filter, sort and paginate pass.
func BenchmarkTable_Recompute(b *testing.B) {
	for _, n := range []int{100, 1_000, 10_000} {
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			tbl := benchTable(b, n)
			if err := tbl.SetSort("name", SortAscending); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tbl.Recompute()
			}
		})
	}
}

// BenchmarkSetSearch is the hot path while a user types in the search box.
func BenchmarkSetSearch(b *testing.B) {
	tbl := benchTable(b, 5_000)
	queries := []string{"m", "me", "mem", "member 4", ""}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tbl.SetSearch(queries[i%len(queries)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSetFilter(b *testing.B) {
	tbl := benchTable(b, 5_000)
	values := []string{"core", "edge", "ops"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tbl.SetFilter(values[i%len(values)]); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSort_Mixed sorts a column holding nil pointers and floats.
func BenchmarkSort_Mixed(b *testing.B) {
	tbl := benchTable(b, 5_000)
	dirs := []SortDirection{SortAscending, SortDescending}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tbl.SetSort("score", dirs[i%2]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSnapshot(b *testing.B) {
	tbl := benchTable(b, 1_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tbl.Snapshot()
	}
}

// BenchmarkEachMatch walks every match the way a CSV export does.
func BenchmarkEachMatch(b *testing.B) {
	tbl := benchTable(b, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		count := 0
		_ = tbl.EachMatch(func(RowView) error {
			count++
			return nil
		})
	}
}

// ============================================================================
// Value Helpers
// ============================================================================

func BenchmarkStringify(b *testing.B) {
	values := []any{"text", 42, 3.14, true, day(2024, 1, 15), ptr(7.5), nil}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			stringify(v)
		}
	}
}

func BenchmarkCompare(b *testing.B) {
	c := newComparer(language.English)
	pairs := [][2]any{{1, 2}, {"alpha", "Beta"}, {day(2020, 1, 1), day(2021, 1, 1)}, {nil, 3}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range pairs {
			c.compare(p[0], p[1])
		}
	}
}
