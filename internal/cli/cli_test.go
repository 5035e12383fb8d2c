package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/opsconsole/internal/config"
	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/core/screens"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	core.Clear()
	screens.Register()

	var out bytes.Buffer
	app := NewApp(store.NewMemoryStore(), nil, config.Presets{}, &out)
	t.Cleanup(func() {
		app.Close()
		core.Clear()
	})
	return app, &out
}

func TestScreensCmd(t *testing.T) {
	app, out := newTestApp(t)

	if err := app.Run("screens"); err != nil {
		t.Fatalf("screens error = %v", err)
	}
	for _, want := range []string{"users", "merchants", "accounts", "Commerce", "People"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestQueryCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr error
	}{
		{
			name: "default page",
			args: []string{"query", "users"},
			want: []string{"Brooklyn Simmons", "12 matches, page 1 of 2, 0 selected"},
		},
		{
			name:    "search",
			args:    []string{"query", "users", "--search", "esther"},
			want:    []string{"Esther Howard", "1 matches"},
			notWant: []string{"Cody Fisher"},
		},
		{
			name: "filter",
			args: []string{"query", "users", "--filter", "Remote"},
			want: []string{"Cody Fisher", "1 matches"},
		},
		{
			name: "second page",
			args: []string{"query", "users", "--page", "2"},
			want: []string{"page 2 of 2", "Wade Warren"},
		},
		{
			name: "selection",
			args: []string{"query", "users", "--select", "usr_02,usr_03"},
			want: []string{"2 selected"},
		},
		{
			name: "merchants by volume",
			args: []string{"query", "merchants", "--sort", "volume", "--dir", "desc", "--size", "10"},
			want: []string{"$1,250,000", "Monthly volume v"},
		},
		{
			name:    "invalid page size",
			args:    []string{"query", "users", "--size", "7"},
			wantErr: datatable.ErrInvalidPageSize,
		},
		{
			name:    "unknown screen",
			args:    []string{"query", "nope"},
			wantErr: core.ErrScreenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t)

			err := app.Run(tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("output contains %q", w)
				}
			}
			if app.service.ActiveSessions() != 0 {
				t.Errorf("sessions left mounted = %d, want 0", app.service.ActiveSessions())
			}
		})
	}
}

func TestQueryCmd_BadDirection(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.Run("query", "users", "--sort", "user", "--dir", "up")
	if err == nil || !strings.Contains(err.Error(), "invalid --dir") {
		t.Errorf("error = %v, want invalid --dir", err)
	}
}

func TestExportCmd(t *testing.T) {
	app, out := newTestApp(t)

	if err := app.Run("export", "users", "--filter", "Hybrid", "--page", "1"); err != nil {
		t.Fatalf("export error = %v", err)
	}
	records, err := csv.NewReader(out).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 6 {
		t.Errorf("records = %d, want header + 5 rows", len(records))
	}
}

func TestActionsCmd(t *testing.T) {
	app, out := newTestApp(t)

	if err := app.Run("actions", "users", "usr_02", "deactivate"); err != nil {
		t.Fatalf("actions error = %v", err)
	}
	if got := out.String(); got != "[warning] Deactivate: Esther Howard\n" {
		t.Errorf("output = %q", got)
	}

	out.Reset()
	if err := app.Run("actions"); err != nil {
		t.Fatalf("list actions error = %v", err)
	}
	if !strings.Contains(out.String(), "Esther Howard") || !strings.Contains(out.String(), "high") {
		t.Errorf("action log output missing entry:\n%s", out.String())
	}

	err := app.Run("actions", "users", "usr_04", "deactivate")
	if !errors.Is(err, datatable.ErrActionNotAvailable) {
		t.Errorf("hidden action error = %v, want ErrActionNotAvailable", err)
	}

	if err := app.Run("actions", "users", "usr_02"); err == nil {
		t.Error("two args should be rejected")
	}
}

func TestDatabaseCmds_RequirePostgres(t *testing.T) {
	for _, name := range []string{"seed", "migrate"} {
		t.Run(name, func(t *testing.T) {
			app, _ := newTestApp(t)
			if err := app.Run(name); !errors.Is(err, errNoDatabase) {
				t.Errorf("%s error = %v, want errNoDatabase", name, err)
			}
		})
	}
}
