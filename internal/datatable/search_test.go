package datatable

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps everything", query: "", want: []string{"alice", "Bob", "carol", "Dave", "erin", "Frank", "grace"}},
		{name: "case insensitive", query: "ALI", want: []string{"alice"}},
		{name: "query is trimmed", query: "  bob \t", want: []string{"Bob"}},
		{name: "substring anywhere", query: "a", want: []string{"alice", "carol", "Dave", "Frank", "grace"}},
		{name: "no match", query: "zz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := peopleConfig()
			cfg.Pagination = nil
			tbl := mustTable(t, cfg, people())

			if err := tbl.SetSearch(tt.query); err != nil {
				t.Fatalf("SetSearch() error = %v", err)
			}
			got := names(tbl.View().VisibleRows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SetSearch(%q) rows = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearch_OnlyConfiguredFields(t *testing.T) {
	cfg := peopleConfig()
	cfg.Pagination = nil
	tbl := mustTable(t, cfg, people())

	// "100" is carol's age, but only the name column is searched.
	_ = tbl.SetSearch("100")
	if got := tbl.View().TotalMatchCount; got != 0 {
		t.Errorf("TotalMatchCount = %d, want 0", got)
	}

	cfg.SearchFields = []string{"name", "age"}
	tbl = mustTable(t, cfg, people())
	_ = tbl.SetSearch("100")
	if got := names(tbl.View().VisibleRows); !reflect.DeepEqual(got, []string{"carol"}) {
		t.Errorf("rows = %v, want [carol]", got)
	}
}

func TestSearch_Disabled(t *testing.T) {
	cfg := peopleConfig()
	cfg.Searchable = false
	cfg.SearchFields = nil
	tbl := mustTable(t, cfg, people())

	if err := tbl.SetSearch("bob"); !errors.Is(err, ErrSearchDisabled) {
		t.Errorf("SetSearch() error = %v, want %v", err, ErrSearchDisabled)
	}
	if err := tbl.SetSearch("  "); err != nil {
		t.Errorf("SetSearch(blank) error = %v, want nil", err)
	}
}

func TestFilter(t *testing.T) {
	cfg := peopleConfig()
	cfg.Pagination = nil
	tbl := mustTable(t, cfg, people())

	if err := tbl.SetFilter("core"); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if got, want := names(tbl.View().VisibleRows), []string{"alice", "carol", "Frank"}; !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if f := tbl.State().ActiveFilter; f == nil || *f != "core" {
		t.Errorf("ActiveFilter = %v, want core", f)
	}

	if err := tbl.SetFilter("Core"); !errors.Is(err, ErrUnknownFilterValue) {
		t.Errorf("SetFilter(Core) error = %v, want %v", err, ErrUnknownFilterValue)
	}
	if got := tbl.View().TotalMatchCount; got != 3 {
		t.Errorf("rejected filter changed the view: TotalMatchCount = %d, want 3", got)
	}

	tbl.ClearFilter()
	if got := tbl.View().TotalMatchCount; got != 7 {
		t.Errorf("after ClearFilter TotalMatchCount = %d, want 7", got)
	}
}

func TestFilter_FreeValuesWithoutOptions(t *testing.T) {
	cfg := peopleConfig()
	cfg.FilterOptions = nil
	tbl := mustTable(t, cfg, people())

	if err := tbl.SetFilter("ops"); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if got := tbl.View().TotalMatchCount; got != 2 {
		t.Errorf("TotalMatchCount = %d, want 2", got)
	}
	if err := tbl.SetFilter("OPS"); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if got := tbl.View().TotalMatchCount; got != 0 {
		t.Errorf("filter is exact: TotalMatchCount = %d, want 0", got)
	}
}

func TestFilter_Disabled(t *testing.T) {
	cfg := peopleConfig()
	cfg.Filterable = false
	tbl := mustTable(t, cfg, people())

	if err := tbl.SetFilter("core"); !errors.Is(err, ErrFilterDisabled) {
		t.Errorf("SetFilter() error = %v, want %v", err, ErrFilterDisabled)
	}
}

// TestTotalMatchCount_NaiveScan checks the pipeline against an independent
// linear scan for every combination of query and filter.
func TestTotalMatchCount_NaiveScan(t *testing.T) {
	rows := append(people(), generated(40)...)
	queries := []string{"", "a", "E", "r", "member 1", "zz"}
	filters := []string{"", "core", "edge", "ops"}

	tbl := mustTable(t, peopleConfig(), rows)
	for _, q := range queries {
		for _, f := range filters {
			_ = tbl.SetSearch(q)
			if f == "" {
				tbl.ClearFilter()
			} else if err := tbl.SetFilter(f); err != nil {
				t.Fatalf("SetFilter(%q) error = %v", f, err)
			}

			want := 0
			for _, p := range rows {
				if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) && (f == "" || p.Team == f) {
					want++
				}
			}
			if got := tbl.View().TotalMatchCount; got != want {
				t.Errorf("query %q filter %q: TotalMatchCount = %d, want %d", q, f, got, want)
			}
		}
	}
}
