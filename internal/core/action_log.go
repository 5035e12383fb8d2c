package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"github.com/google/uuid"
)

// Severity represents the severity level of an action-log entry.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DefaultActionLogSize is the number of entries kept in memory.
const DefaultActionLogSize = 500

// ActionEntry represents one invoked row action.
type ActionEntry struct {
	ID        string            `json:"id"`
	Screen    string            `json:"screen"`
	Action    string            `json:"action"`
	Label     string            `json:"label"`
	Variant   datatable.Variant `json:"variant"`
	RowKey    string            `json:"rowKey"`
	RowTitle  string            `json:"rowTitle,omitempty"`
	Severity  Severity          `json:"severity"`
	IPAddress string            `json:"ipAddress,omitempty"`
	UserAgent string            `json:"userAgent,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// determineSeverity returns the severity for an action variant.
func determineSeverity(v datatable.Variant) Severity {
	switch v {
	case datatable.VariantDestructive:
		return SeverityHigh
	case datatable.VariantDefault, "":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// actionLog is a fixed-size ring of the most recent entries.
type actionLog struct {
	mu      sync.RWMutex
	entries []ActionEntry
	next    int
	full    bool
}

func newActionLog(size int) *actionLog {
	if size <= 0 {
		size = DefaultActionLogSize
	}
	return &actionLog{entries: make([]ActionEntry, size)}
}

func (l *actionLog) add(e ActionEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// recent returns up to limit entries, newest first. limit <= 0 means all.
func (l *actionLog) recent(limit int) []ActionEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := l.next
	if l.full {
		n = len(l.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]ActionEntry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

// logAction records an invoked action in memory and in the store. A store
// failure is logged; the action itself already ran.
func (s *Service) logAction(ctx context.Context, screen ScreenInfo, event datatable.ActionEvent, rowTitle string) ActionEntry {
	meta := RequestMetaFromContext(ctx)
	entry := ActionEntry{
		ID:        uuid.New().String(),
		Screen:    screen.Key,
		Action:    event.ActionID,
		Label:     event.Label,
		Variant:   event.Variant,
		RowKey:    event.RowKey,
		RowTitle:  rowTitle,
		Severity:  determineSeverity(event.Variant),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: s.now().UTC(),
	}
	s.actions.add(entry)

	err := s.store.RecordAction(ctx, store.ActionRecord{
		ID:        entry.ID,
		Screen:    entry.Screen,
		Action:    entry.Action,
		Label:     entry.Label,
		Variant:   string(entry.Variant),
		RowKey:    entry.RowKey,
		RowTitle:  entry.RowTitle,
		Severity:  string(entry.Severity),
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		slog.Error("persist action failed", "action_id", entry.ID, "screen", entry.Screen, "error", err)
	}

	slog.Info("action invoked",
		"screen", entry.Screen,
		"action", entry.Action,
		"row_key", entry.RowKey,
		"severity", entry.Severity,
	)
	return entry
}

// RecentActions returns up to limit action-log entries, newest first. The
// store is authoritative; the in-memory ring answers when it fails.
func (s *Service) RecentActions(ctx context.Context, limit int) ([]ActionEntry, error) {
	records, err := s.store.RecentActions(ctx, limit)
	if err != nil {
		slog.Warn("load actions from store failed, using memory log", "error", err)
		return s.actions.recent(limit), nil
	}

	entries := make([]ActionEntry, len(records))
	for i, r := range records {
		entries[i] = ActionEntry{
			ID:        r.ID,
			Screen:    r.Screen,
			Action:    r.Action,
			Label:     r.Label,
			Variant:   datatable.Variant(r.Variant),
			RowKey:    r.RowKey,
			RowTitle:  r.RowTitle,
			Severity:  Severity(r.Severity),
			IPAddress: r.IPAddress,
			UserAgent: r.UserAgent,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}
