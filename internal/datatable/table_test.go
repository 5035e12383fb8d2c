package datatable

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestSetRows_DuplicateKey(t *testing.T) {
	tbl := mustTable(t, peopleConfig(), people())

	rows := append(people(), person{ID: "p01", Name: "impostor"})
	if err := tbl.SetRows(rows); !errors.Is(err, ErrDuplicateRowKey) {
		t.Fatalf("SetRows() error = %v, want %v", err, ErrDuplicateRowKey)
	}
	if got := tbl.Len(); got != 7 {
		t.Errorf("Len() = %d, want previous 7", got)
	}
}

func TestSetRows_DoesNotMutateInput(t *testing.T) {
	rows := people()
	before := keys(rows)

	tbl := mustTable(t, peopleConfig(), rows)
	_ = tbl.SetSort("name", SortDescending)
	_ = tbl.SetSearch("a")

	if got := keys(rows); !reflect.DeepEqual(got, before) {
		t.Errorf("caller rows reordered to %v", got)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	tbl := mustTable(t, peopleConfig(), append(people(), generated(20)...))
	_ = tbl.SetSearch("e")
	_ = tbl.SetSort("joined", SortDescending)
	_ = tbl.SetPage(1)

	first := tbl.View()
	tbl.Recompute()
	second := tbl.View()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Recompute() changed the view:\n first  %+v\n second %+v", first, second)
	}
}

func TestClickRow(t *testing.T) {
	var clicked []string
	cfg := peopleConfig()
	cfg.OnRowClick = func(p person) { clicked = append(clicked, p.Name) }
	tbl := mustTable(t, cfg, people())

	if err := tbl.ClickRow("p02"); err != nil {
		t.Fatalf("ClickRow() error = %v", err)
	}
	if !reflect.DeepEqual(clicked, []string{"Bob"}) {
		t.Errorf("clicked = %v, want [Bob]", clicked)
	}
	if err := tbl.ClickRow("nope"); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("ClickRow(nope) error = %v, want %v", err, ErrRowNotFound)
	}
}

func TestInvokeAction(t *testing.T) {
	var handled []string
	var events []ActionEvent

	cfg := peopleConfig()
	cfg.Actions[1].Handler = func(p person) { handled = append(handled, p.ID) }
	cfg.OnAction = func(e ActionEvent, p person) { events = append(events, e) }
	tbl := mustTable(t, cfg, people())

	event, err := tbl.InvokeAction("remove", "p01")
	if err != nil {
		t.Fatalf("InvokeAction() error = %v", err)
	}
	want := ActionEvent{ActionID: "remove", Label: "Remove", Variant: VariantDestructive, RowKey: "p01"}
	if event != want {
		t.Errorf("event = %+v, want %+v", event, want)
	}

	// Invocations are never deduplicated.
	_, _ = tbl.InvokeAction("remove", "p01")
	if len(handled) != 2 || len(events) != 2 {
		t.Errorf("handler ran %d times and OnAction %d times, want 2 and 2", len(handled), len(events))
	}

	view, err := tbl.InvokeAction("view", "p02")
	if err != nil {
		t.Fatalf("InvokeAction(view) error = %v", err)
	}
	if view.Variant != VariantDefault {
		t.Errorf("Variant = %q, want %q", view.Variant, VariantDefault)
	}

	tests := []struct {
		name   string
		action string
		key    string
		want   error
	}{
		{name: "unknown action", action: "delete", key: "p01", want: ErrUnknownAction},
		{name: "unknown row", action: "view", key: "p99", want: ErrRowNotFound},
		{name: "hidden for row", action: "remove", key: "p02", want: ErrActionNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tbl.InvokeAction(tt.action, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("InvokeAction(%s, %s) error = %v, want %v", tt.action, tt.key, err, tt.want)
			}
		})
	}
	if len(handled) != 2 {
		t.Errorf("rejected invocations ran the handler: %d calls", len(handled))
	}
}

func TestAccessorFaults(t *testing.T) {
	type meta struct{ Level int }

	cfg := peopleConfig()
	cfg.Pagination = nil
	cfg.SearchFields = []string{"name", "fragile"}
	cfg.Columns = append(cfg.Columns,
		Column[person]{
			ID:     "fragile",
			Header: "Fragile",
			Accessor: func(p person) any {
				if p.ID == "p03" {
					panic("bad row")
				}
				return p.Team
			},
			Sortable:   true,
			Searchable: true,
		},
		Column[person]{
			ID:       "meta",
			Header:   "Meta",
			Accessor: func(p person) any { return meta{Level: p.Age} },
			Sortable: true,
		},
	)
	tbl := mustTable(t, cfg, people())

	if err := tbl.SetSort("fragile", SortAscending); err != nil {
		t.Fatalf("SetSort() error = %v", err)
	}
	view := tbl.View()
	if view.Faults != 1 {
		t.Errorf("Faults = %d, want 1", view.Faults)
	}
	if last := view.VisibleRows[len(view.VisibleRows)-1]; last.ID != "p03" {
		t.Errorf("faulting row sorted to %s, want it last", last.ID)
	}
	if view.TotalMatchCount != 7 {
		t.Errorf("a fault dropped rows: TotalMatchCount = %d", view.TotalMatchCount)
	}

	// carol's name still matches even though her fragile column faults.
	_ = tbl.SetSearch("carol")
	if got := names(tbl.View().VisibleRows); !reflect.DeepEqual(got, []string{"carol"}) {
		t.Errorf("rows = %v, want [carol]", got)
	}

	// A structured value without a string projection is no value for every row.
	_ = tbl.SetSearch("")
	_ = tbl.SetSort("meta", SortAscending)
	if got := tbl.View().Faults; got != 7 {
		t.Errorf("Faults = %d, want 7", got)
	}
	if got := keys(tbl.View().VisibleRows); got[0] != "p01" {
		t.Errorf("rows without values reordered: %v", got)
	}
}

func TestTextProjection(t *testing.T) {
	type owner struct{ First, Last string }

	cfg := peopleConfig()
	cfg.Pagination = nil
	cfg.SearchFields = []string{"owner"}
	cfg.Columns = append(cfg.Columns, Column[person]{
		ID:         "owner",
		Header:     "Owner",
		Accessor:   func(p person) any { return owner{First: p.Name, Last: p.Team} },
		Text:       func(p person) string { return p.Name + " of " + p.Team },
		Sortable:   true,
		Searchable: true,
	})
	tbl := mustTable(t, cfg, people())

	_ = tbl.SetSearch("OF OPS")
	if got := names(tbl.View().VisibleRows); !reflect.DeepEqual(got, []string{"Dave", "grace"}) {
		t.Errorf("rows = %v, want [Dave grace]", got)
	}

	_ = tbl.SetSearch("")
	_ = tbl.SetSort("owner", SortDescending)
	if got := names(tbl.View().VisibleRows); got[0] != "grace" {
		t.Errorf("first row = %s, want grace", got[0])
	}
	if f := tbl.View().Faults; f != 0 {
		t.Errorf("Faults = %d, want 0", f)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := peopleConfig()
	cfg.Columns[5].Render = func(p person) string {
		if p.Active {
			return "yes"
		}
		return "no"
	}
	tbl := mustTable(t, cfg, people())
	_ = tbl.SetSort("age", SortDescending)
	_ = tbl.Select("p03")

	snap := tbl.Snapshot()

	if len(snap.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(snap.Rows))
	}
	carol := snap.Rows[0]
	if carol.Key != "p03" || !carol.Selected {
		t.Errorf("first row = %s selected=%v, want p03 selected", carol.Key, carol.Selected)
	}
	wantCells := []string{"carol", "100", "core", "2022-07-04", "9", "yes"}
	if !reflect.DeepEqual(carol.Cells, wantCells) {
		t.Errorf("cells = %v, want %v", carol.Cells, wantCells)
	}
	if len(carol.Actions) != 2 || carol.Actions[1].Variant != VariantDestructive {
		t.Errorf("actions = %+v, want view and destructive remove", carol.Actions)
	}

	if snap.Columns[1].Sorted != SortDescending || snap.Columns[0].Sorted != SortNone {
		t.Errorf("header sort markers = %v/%v, want none/desc", snap.Columns[0].Sorted, snap.Columns[1].Sorted)
	}
	if snap.TotalMatchCount != 7 || snap.PageCount != 3 || snap.SelectedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 7/3/1", snap.TotalMatchCount, snap.PageCount, snap.SelectedCount)
	}
	if !snap.Controls.Paginated || !reflect.DeepEqual(snap.Controls.PageSizeOptions, []int{3, 5, 10}) {
		t.Errorf("controls = %+v", snap.Controls)
	}
	if got := len(snap.Controls.SortOptions); got != 6 {
		t.Errorf("derived sort options = %d, want 6", got)
	}

	// Frank (51) is second.
	if frank := snap.Rows[1]; frank.Cells[4] != "7.5" {
		t.Errorf("Frank score cell = %q, want 7.5", frank.Cells[4])
	}
	_ = tbl.SetPage(1)
	for _, row := range tbl.Snapshot().Rows {
		if row.Key == "p05" && row.Cells[4] != "" {
			t.Errorf("missing score rendered as %q, want empty", row.Cells[4])
		}
	}
}

func TestEachMatch(t *testing.T) {
	tbl := mustTable(t, peopleConfig(), people())
	_ = tbl.SetFilter("core")
	_ = tbl.SetSort("name", SortDescending)

	var got []string
	err := tbl.EachMatch(func(row RowView) error {
		got = append(got, row.Cells[0])
		return nil
	})
	if err != nil {
		t.Fatalf("EachMatch() error = %v", err)
	}
	if want := []string{"Frank", "carol", "alice"}; !reflect.DeepEqual(got, want) {
		t.Errorf("EachMatch() = %v, want %v", got, want)
	}

	stop := errors.New("stop")
	calls := 0
	err = tbl.EachMatch(func(RowView) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("EachMatch() = %v after %d calls, want stop after 1", err, calls)
	}
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   SortDirection
		wantOK bool
	}{
		{"", SortNone, true},
		{"asc", SortAscending, true},
		{"DESC", SortDescending, true},
		{" descending ", SortDescending, true},
		{"sideways", SortNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseSortDirection(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSortDirection(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSortDirection_TextRoundTrip(t *testing.T) {
	for _, dir := range []SortDirection{SortNone, SortAscending, SortDescending} {
		data, err := json.Marshal(ViewState{SortDirection: dir})
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", dir, err)
		}
		var got ViewState
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if got.SortDirection != dir {
			t.Errorf("round trip of %v = %v", dir, got.SortDirection)
		}
	}

	var d SortDirection
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText(sideways) error = nil, want error")
	}
}

func TestSetRows_PanickingKey(t *testing.T) {
	cfg := peopleConfig()
	cfg.Key = func(p person) string {
		if p.ID == "" {
			panic("no id")
		}
		return p.ID
	}
	tbl := mustTable(t, cfg, people())

	rows := append(people(), person{Name: "nameless"})
	if err := tbl.SetRows(rows); !errors.Is(err, ErrInvalidRowKey) {
		t.Fatalf("SetRows() error = %v, want %v", err, ErrInvalidRowKey)
	}
	if got := tbl.Len(); got != 7 {
		t.Errorf("Len() = %d, want previous 7", got)
	}
}
