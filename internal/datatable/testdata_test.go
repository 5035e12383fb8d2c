package datatable

import (
	"fmt"
	"testing"
	"time"
)

type person struct {
	ID     string
	Name   string
	Age    int
	Team   string
	Joined time.Time
	Score  *float64
	Active bool
}

func ptr[V any](v V) *V { return &v }

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func people() []person {
	return []person{
		{ID: "p01", Name: "alice", Age: 34, Team: "core", Joined: day(2021, 3, 1), Score: ptr(7.5), Active: true},
		{ID: "p02", Name: "Bob", Age: 9, Team: "edge", Joined: day(2020, 1, 15)},
		{ID: "p03", Name: "carol", Age: 100, Team: "core", Joined: day(2022, 7, 4), Score: ptr(9.0), Active: true},
		{ID: "p04", Name: "Dave", Age: 10, Team: "ops", Joined: day(2019, 11, 30), Score: ptr(2.0)},
		{ID: "p05", Name: "erin", Age: 34, Team: "edge", Joined: day(2023, 2, 2)},
		{ID: "p06", Name: "Frank", Age: 51, Team: "core", Joined: day(2018, 5, 20), Score: ptr(7.5), Active: true},
		{ID: "p07", Name: "grace", Age: 27, Team: "ops", Joined: day(2024, 8, 8), Score: ptr(4.0), Active: true},
	}
}

// generated returns n rows; the first six are on team "core", the rest on "edge".
func generated(n int) []person {
	rows := make([]person, n)
	for i := range rows {
		team := "edge"
		if i < 6 {
			team = "core"
		}
		rows[i] = person{
			ID:     fmt.Sprintf("g%03d", i),
			Name:   fmt.Sprintf("member %d", i),
			Age:    20 + i%40,
			Team:   team,
			Joined: day(2020, 1+i%12, 1+i%28),
		}
	}
	return rows
}

func peopleConfig() Config[person] {
	return Config[person]{
		Key: func(p person) string { return p.ID },
		Columns: []Column[person]{
			{ID: "name", Header: "Name", Accessor: func(p person) any { return p.Name }, Sortable: true, Searchable: true},
			{ID: "age", Header: "Age", Accessor: func(p person) any { return p.Age }, Sortable: true, Searchable: true},
			{ID: "team", Header: "Team", Accessor: func(p person) any { return p.Team }, Sortable: true},
			{ID: "joined", Header: "Joined", Accessor: func(p person) any { return p.Joined }, Sortable: true},
			{ID: "score", Header: "Score", Accessor: func(p person) any { return p.Score }, Sortable: true},
			{ID: "active", Header: "Active", Accessor: func(p person) any { return p.Active }, Sortable: true},
		},
		Actions: []Action[person]{
			{ID: "view", Label: "View"},
			{ID: "remove", Label: "Remove", Variant: VariantDestructive, Visible: func(p person) bool { return p.Active }},
		},
		Searchable:   true,
		SearchFields: []string{"name"},
		Filterable:   true,
		FilterColumn: "team",
		FilterOptions: []Option{
			{Label: "Core", Value: "core"},
			{Label: "Edge", Value: "edge"},
			{Label: "Ops", Value: "ops"},
		},
		Sortable:   true,
		Selectable: true,
		Pagination: &Pagination{PageSize: 3, PageSizeOptions: []int{3, 5, 10}},
	}
}

func mustTable(t testing.TB, cfg Config[person], rows []person) *Table[person] {
	t.Helper()
	tbl, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tbl.SetRows(rows); err != nil {
		t.Fatalf("SetRows() error = %v", err)
	}
	return tbl
}

func names(rows []person) []string {
	out := make([]string, len(rows))
	for i, p := range rows {
		out[i] = p.Name
	}
	return out
}

func keys(rows []person) []string {
	out := make([]string, len(rows))
	for i, p := range rows {
		out[i] = p.ID
	}
	return out
}
