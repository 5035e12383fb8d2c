package store

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/config"
	"github.com/google/uuid"
)

func TestSampleUsers(t *testing.T) {
	users := SampleUsers()
	if len(users) != 12 {
		t.Fatalf("len(SampleUsers()) = %d, want 12", len(users))
	}

	seen := make(map[string]bool)
	var esther, remote []string
	for _, u := range users {
		if seen[u.ID] {
			t.Errorf("duplicate user id %s", u.ID)
		}
		seen[u.ID] = true
		if strings.Contains(strings.ToLower(u.UserName), "esther") {
			esther = append(esther, u.UserName)
		}
		if u.WorkMode == WorkModeRemote {
			remote = append(remote, u.UserName)
		}
	}
	if len(esther) != 1 || esther[0] != "Esther Howard" {
		t.Errorf("users matching esther = %v, want [Esther Howard]", esther)
	}
	if len(remote) != 1 || remote[0] != "Cody Fisher" {
		t.Errorf("remote users = %v, want [Cody Fisher]", remote)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	users, err := s.Users(ctx)
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	users[0].UserName = "changed"

	again, _ := s.Users(ctx)
	if again[0].UserName == "changed" {
		t.Error("Users() exposed internal storage")
	}
}

func TestMemoryStore_RecentActions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.RecordAction(ctx, ActionRecord{ID: id, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("RecordAction() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "newest first", limit: 2, want: []string{"c", "b"}},
		{name: "zero means all", limit: 0, want: []string{"c", "b", "a"}},
		{name: "limit above count", limit: 10, want: []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.RecentActions(ctx, tt.limit)
			if err != nil {
				t.Fatalf("RecentActions() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("RecentActions(%d) returned %d entries, want %d", tt.limit, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("RecentActions(%d)[%d] = %s, want %s", tt.limit, i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Merchants(ctx); err == nil {
		t.Error("Merchants() with cancelled context returned nil error")
	}
	if err := s.RecordAction(ctx, ActionRecord{ID: "x"}); err == nil {
		t.Error("RecordAction() with cancelled context returned nil error")
	}
}

// TestPgStore_RoundTrip runs against a real database when TEST_DATABASE_URL is set.
func TestPgStore_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := Connect(ctx, url, PoolOptions{MaxConns: 2})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := s.Seed(ctx, SampleUsers(), SampleMerchants(), SampleAccounts()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	users, err := s.Users(ctx)
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != 12 {
		t.Errorf("len(Users()) = %d, want 12", len(users))
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}
	for _, a := range accounts {
		if a.ID == "acc_04" && a.LastLogin != nil {
			t.Errorf("acc_04 LastLogin = %v, want nil", a.LastLogin)
		}
	}

	rec := ActionRecord{
		ID:        uuid.NewString(),
		Screen:    "users",
		Action:    "deactivate",
		Label:     "Deactivate",
		Variant:   "destructive",
		RowKey:    "usr_02",
		Severity:  "high",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.RecordAction(ctx, rec); err != nil {
		t.Fatalf("RecordAction() error = %v", err)
	}
	recent, err := s.RecentActions(ctx, 1)
	if err != nil {
		t.Fatalf("RecentActions() error = %v", err)
	}
	if len(recent) != 1 || recent[0].ID != rec.ID {
		t.Errorf("RecentActions() = %+v, want %s first", recent, rec.ID)
	}
}

func TestOpen_WithoutURLUsesSampleData(t *testing.T) {
	st, err := Open(context.Background(), config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()

	if _, ok := st.(*MemoryStore); !ok {
		t.Fatalf("Open() = %T, want *MemoryStore", st)
	}
	users, err := st.Users(context.Background())
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != 12 {
		t.Errorf("Users() = %d rows, want 12", len(users))
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{URL: "postgres://%zz"})
	if err == nil {
		t.Fatal("Open() error = nil, want parse error")
	}
}
