package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/config"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/metrics"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// ErrScreenNotFound is returned when mounting an unregistered screen.
var ErrScreenNotFound = errors.New("screen not found")

// ErrUnknownSelectionOp is returned for a selection change Select does not know.
var ErrUnknownSelectionOp = errors.New("unknown selection operation")

// Service provides the business logic of the console: it loads datasets,
// mounts screens as table sessions and routes interactions to them.
type Service struct {
	store   store.Store
	table   config.TableConfig
	presets config.Presets

	dataset   atomic.Pointer[Dataset]
	refreshMu sync.Mutex

	sessions *sessionCache
	actions  *actionLog
	exports  *ExportLimiter

	now func() time.Time
}

// NewService creates a Service over st. A nil cfg uses the defaults of
// the table and export settings.
func NewService(st store.Store, cfg *config.Config, presets config.Presets) *Service {
	table := config.TableConfig{
		DefaultPageSize: 10,
		PageSizeOptions: []int{10, 20, 50},
		Locale:          "en",
		SessionTTL:      DefaultSessionTTL,
		MaxSessions:     DefaultMaxSessions,
	}
	export := config.ExportConfig{MaxConcurrent: DefaultMaxConcurrentExports, MaxWaitTime: DefaultExportWait}
	if cfg != nil {
		table, export = cfg.Table, cfg.Export
	}

	s := &Service{
		store:   st,
		table:   table,
		presets: presets,
		actions: newActionLog(DefaultActionLogSize),
		exports: NewExportLimiter(export.MaxConcurrent, export.MaxWaitTime),
		now:     time.Now,
	}
	s.sessions = newSessionCache(table.SessionTTL, table.MaxSessions, s.onSessionExpired)
	return s
}

// onSessionExpired runs inside the cache; it must not call back into it.
func (s *Service) onSessionExpired(sess *session) {
	if sess.closed.Swap(true) {
		return
	}
	metrics.ExpiredSessions.Inc()
	metrics.ActiveSessions.Dec()
	slog.Info("table session expired", "session_id", sess.id, "screen", sess.screen.Key)
}

// ListScreens returns information about all registered screens.
func (s *Service) ListScreens() []ScreenInfo {
	defs := All()
	infos := make([]ScreenInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListScreensByGroup returns screens organized by navigation group.
func (s *Service) ListScreensByGroup() map[string][]ScreenInfo {
	result := make(map[string][]ScreenInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Refresh loads every dataset from the store and swaps them in as one
// unit. On failure the previous dataset stays current.
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	var (
		users     []store.User
		merchants []store.Merchant
		accounts  []store.Account
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if users, err = s.store.Users(gctx); err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if merchants, err = s.store.Merchants(gctx); err != nil {
			return fmt.Errorf("load merchants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if accounts, err = s.store.Accounts(gctx); err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.DatasetRefreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh: %w", err)
	}

	var version int64 = 1
	if prev := s.dataset.Load(); prev != nil {
		version = prev.Version + 1
	}
	s.dataset.Store(&Dataset{
		Version:   version,
		LoadedAt:  s.now().UTC(),
		Users:     users,
		Merchants: merchants,
		Accounts:  accounts,
	})
	metrics.DatasetRefreshes.WithLabelValues("ok").Inc()
	return nil
}

// Dataset returns the current dataset, or nil before the first refresh.
func (s *Service) Dataset() *Dataset {
	return s.dataset.Load()
}

// currentDataset returns the dataset, loading it on first use.
func (s *Service) currentDataset(ctx context.Context) (*Dataset, error) {
	if ds := s.dataset.Load(); ds != nil {
		return ds, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.dataset.Load(), nil
}

// Mount creates a table session for a screen and returns its first page.
func (s *Service) Mount(ctx context.Context, screenKey string) (View, error) {
	def, ok := Get(screenKey)
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrScreenNotFound, screenKey)
	}

	ds, err := s.currentDataset(ctx)
	if err != nil {
		return View{}, err
	}

	sess := &session{
		id:        uuid.NewString(),
		screen:    def.Info,
		version:   ds.Version,
		createdAt: s.now().UTC(),
	}

	done := metrics.Instrument(screenKey, "mount")
	g, err := def.Mount(ds, s.presetFor(screenKey), s.hooks(sess))
	done()
	if err != nil {
		return View{}, err
	}
	sess.grid = g

	if err := s.sessions.put(sess); err != nil {
		return View{}, err
	}
	metrics.ActiveSessions.Set(float64(s.sessions.count()))
	s.observeFaults(sess)

	slog.Info("table mounted",
		"session_id", sess.id,
		"screen", screenKey,
		"rows", g.Len(),
		"dataset_version", ds.Version,
	)
	return View{Session: sess.info(), Snapshot: g.Snapshot()}, nil
}

// View returns the current page of a session.
func (s *Service) View(ctx context.Context, sessionID string) (View, error) {
	var v View
	err := s.withSession(ctx, sessionID, "view", func(sess *session) error {
		v = View{Session: sess.info(), Snapshot: sess.grid.Snapshot()}
		return nil
	})
	return v, err
}

// Info returns the identity of a session without rendering it.
func (s *Service) Info(ctx context.Context, sessionID string) (SessionInfo, error) {
	var info SessionInfo
	err := s.withSession(ctx, sessionID, "info", func(sess *session) error {
		info = sess.info()
		return nil
	})
	return info, err
}

// Apply changes the view state of a session in the fixed order page size,
// search, filter, sort, page. It stops at the first rejected change;
// changes applied before it stay in effect.
func (s *Service) Apply(ctx context.Context, sessionID string, q Query) (View, error) {
	var v View
	err := s.withSession(ctx, sessionID, "apply", func(sess *session) error {
		if err := applyQuery(sess.grid, q); err != nil {
			return err
		}
		s.observeFaults(sess)
		v = View{Session: sess.info(), Snapshot: sess.grid.Snapshot()}
		return nil
	})
	return v, err
}

func applyQuery(g Grid, q Query) error {
	if q.PageSize != nil {
		if err := g.SetPageSize(*q.PageSize); err != nil {
			return err
		}
	}
	if q.Search != nil {
		if err := g.SetSearch(*q.Search); err != nil {
			return err
		}
	}
	if q.Filter != nil {
		if *q.Filter == "" {
			g.ClearFilter()
		} else if err := g.SetFilter(*q.Filter); err != nil {
			return err
		}
	}
	if q.SortColumn != nil || q.SortDirection != nil {
		state := g.State()
		col, dir := state.SortColumnID, state.SortDirection
		if q.SortColumn != nil {
			col = *q.SortColumn
		}
		if q.SortDirection != nil {
			dir = *q.SortDirection
		} else if dir == datatable.SortNone {
			dir = datatable.SortAscending
		}
		if err := g.SetSort(col, dir); err != nil {
			return err
		}
	}
	if q.Page != nil {
		if err := g.SetPage(*q.Page); err != nil {
			return err
		}
	}
	return nil
}

// Select changes the selection of a session. key is ignored by the
// operations that do not name a row.
func (s *Service) Select(ctx context.Context, sessionID string, op SelectionOp, key string) (View, error) {
	var v View
	err := s.withSession(ctx, sessionID, "select", func(sess *session) error {
		var err error
		switch op {
		case SelectRow:
			err = sess.grid.Select(key)
		case DeselectRow:
			err = sess.grid.Deselect(key)
		case ToggleRow:
			err = sess.grid.ToggleSelection(key)
		case SelectAllVisible:
			err = sess.grid.SelectAllVisible()
		case ClearSelection:
			err = sess.grid.ClearSelection()
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownSelectionOp, op)
		}
		if err != nil {
			return err
		}
		v = View{Session: sess.info(), Snapshot: sess.grid.Snapshot()}
		return nil
	})
	return v, err
}

// ClickRow opens the detail view of a row.
func (s *Service) ClickRow(ctx context.Context, sessionID, rowKey string) (RowDetail, error) {
	var d RowDetail
	err := s.withSession(ctx, sessionID, "click", func(sess *session) error {
		var err error
		d, err = sess.grid.Detail(rowKey)
		return err
	})
	return d, err
}

// InvokeAction runs a row action, records it in the action log and returns
// the notice to show. Actions are never deduplicated.
func (s *Service) InvokeAction(ctx context.Context, sessionID, actionID, rowKey string) (ActionResult, error) {
	var res ActionResult
	err := s.withSession(ctx, sessionID, "action", func(sess *session) error {
		event, err := sess.grid.InvokeAction(actionID, rowKey)
		if err != nil {
			return err
		}

		title := rowKey
		if rv, ok := sess.grid.RenderRow(rowKey); ok && len(rv.Cells) > 0 && rv.Cells[0] != "" {
			title = rv.Cells[0]
		}

		res = ActionResult{
			Event:    event,
			Entry:    s.logAction(ctx, sess.screen, event, title),
			Notice:   noticeFor(event, title),
			Snapshot: sess.grid.Snapshot(),
		}
		return nil
	})
	return res, err
}

func noticeFor(event datatable.ActionEvent, title string) Notice {
	level := NoticeSuccess
	if event.Variant == datatable.VariantDestructive {
		level = NoticeWarning
	}
	return Notice{Level: level, Message: fmt.Sprintf("%s: %s", event.Label, title)}
}

// Unmount closes a session and drops its view state.
func (s *Service) Unmount(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	alreadyClosed := sess.closed.Swap(true)
	sess.mu.Unlock()
	if alreadyClosed {
		return ErrSessionNotFound
	}

	_ = s.sessions.remove(sessionID)
	metrics.ActiveSessions.Set(float64(s.sessions.count()))
	slog.Info("table unmounted", "session_id", sessionID, "screen", sess.screen.Key)
	return nil
}

// Export streams every match of a session in the current order, ignoring
// pagination. fn receives the header labels first, then one call per row.
// The session stays locked for the whole stream.
func (s *Service) Export(ctx context.Context, sessionID string, fn func(row []string) error) error {
	if err := s.exports.Acquire(ctx); err != nil {
		metrics.Exports.WithLabelValues("", "rejected").Inc()
		return err
	}
	defer s.exports.Release()

	rows := 0
	var screen string
	err := s.withSession(ctx, sessionID, "export", func(sess *session) error {
		screen = sess.screen.Key

		columns := sess.grid.Snapshot().Columns
		header := make([]string, len(columns))
		for i, c := range columns {
			header[i] = c.Header
		}
		if err := fn(header); err != nil {
			return err
		}

		return sess.grid.EachMatch(func(rv datatable.RowView) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows++
			return fn(rv.Cells)
		})
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Exports.WithLabelValues(screen, outcome).Inc()
	slog.Info("table exported", "session_id", sessionID, "screen", screen, "rows", rows, "outcome", outcome)
	return err
}

// ExportLimiterStatus returns the state of the export limiter.
func (s *Service) ExportLimiterStatus() ExportLimiterStatus {
	return s.exports.Status()
}

// WaitForExports blocks until running exports finish or ctx is done.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.exports.WaitForDrain(ctx)
}

// ActiveSessions returns the number of mounted tables.
func (s *Service) ActiveSessions() int {
	return s.sessions.count()
}

// Close drops every session. The store is owned by the caller.
func (s *Service) Close() {
	s.sessions.close()
	metrics.ActiveSessions.Set(0)
}

// withSession runs fn with the session locked and synced to the current
// dataset. op labels the latency metric.
func (s *Service) withSession(ctx context.Context, sessionID, op string, fn func(sess *session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sess, err := s.sessions.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed.Load() {
		return ErrSessionNotFound
	}
	s.syncDataset(sess)

	done := metrics.Instrument(sess.screen.Key, op)
	defer done()
	return fn(sess)
}

// syncDataset reloads the session's rows when a newer dataset exists.
// Rows are replaced wholesale, so stale selections are pruned. A reload
// that fails keeps the previous rows.
func (s *Service) syncDataset(sess *session) {
	ds := s.dataset.Load()
	if ds == nil || ds.Version == sess.version {
		return
	}

	if err := sess.grid.Reload(ds); err != nil {
		slog.Error("reload table failed, keeping previous rows",
			"session_id", sess.id,
			"screen", sess.screen.Key,
			"dataset_version", ds.Version,
			"error", err,
		)
	} else {
		slog.Debug("table reloaded", "session_id", sess.id, "dataset_version", ds.Version)
		s.observeFaults(sess)
	}
	sess.version = ds.Version
}

// observeFaults reports the accessor faults of the last recompute.
func (s *Service) observeFaults(sess *session) {
	faults := sess.grid.Faults()
	if faults == 0 {
		return
	}
	metrics.AccessorFaults.WithLabelValues(sess.screen.Key).Add(float64(faults))
	slog.Warn("accessor faults contained",
		"session_id", sess.id,
		"screen", sess.screen.Key,
		"faults", faults,
	)
}

func (s *Service) hooks(sess *session) Hooks {
	screen := sess.screen.Key
	return Hooks{
		OnRowClick: func(key string) {
			slog.Debug("row clicked", "screen", screen, "row_key", key)
		},
		OnAction: func(e datatable.ActionEvent) {
			metrics.ActionsInvoked.WithLabelValues(screen, e.ActionID, string(e.Variant)).Inc()
		},
		OnSelectionChange: func(keys []string) {
			slog.Debug("selection changed", "screen", screen, "selected", len(keys))
		},
		OnPageChange: func(page int) {
			slog.Debug("page changed", "screen", screen, "page", page)
		},
	}
}

// presetFor merges the table defaults with the screen's preset.
func (s *Service) presetFor(screenKey string) Preset {
	p := Preset{
		PageSize:        s.table.DefaultPageSize,
		PageSizeOptions: s.table.PageSizeOptions,
		Locale:          s.table.LocaleTag(),
	}

	sp := s.presets.For(screenKey)
	if len(sp.PageSizeOptions) > 0 {
		p.PageSizeOptions = sp.PageSizeOptions
	}
	if sp.PageSize > 0 {
		p.PageSize = sp.PageSize
	}
	if sp.DefaultSort != "" {
		p.DefaultSort = sp.DefaultSort
		dir, ok := datatable.ParseSortDirection(sp.DefaultSortDirection)
		if !ok || dir == datatable.SortNone {
			dir = datatable.SortAscending
		}
		p.DefaultSortDirection = dir
	}
	if sp.Locale != "" {
		if tag, err := language.Parse(sp.Locale); err == nil {
			p.Locale = tag
		}
	}
	return p
}
