package web

import (
	"net/http"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/logging"
	"github.com/JonMunkholm/opsconsole/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// navGroups returns the sidebar sections in group order.
func (s *Server) navGroups() []templates.NavGroup {
	byGroup := s.service.ListScreensByGroup()
	groups := make([]templates.NavGroup, 0, len(byGroup))
	for _, name := range core.Groups() {
		groups = append(groups, templates.NavGroup{Name: name, Screens: byGroup[name]})
	}
	return groups
}

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params := templates.DashboardParams{
		Groups:         s.navGroups(),
		ActiveSessions: s.service.ActiveSessions(),
	}
	if ds := s.service.Dataset(); ds != nil {
		params.DatasetVersion = ds.Version
		params.LoadedAt = ds.LoadedAt
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}

// handleScreenPage mounts a fresh table for the screen and renders the full
// page. Query parameters set the initial view state; if one is rejected the
// page still renders with the changes applied before it and an alert.
func (s *Server) handleScreenPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	screenKey := chi.URLParam(r, "screenKey")

	view, err := s.service.Mount(ctx, screenKey)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	sessionID := view.Session.ID
	var alert *core.UserMessage
	q, err := parseQuery(r.URL.Query())
	if err == nil && !q.Empty() {
		view, err = s.service.Apply(ctx, sessionID, q)
	}
	if err != nil {
		logging.FromContext(ctx).Warn("initial view state rejected", "screen", screenKey, "error", err)
		msg := core.MapError(err)
		alert = &msg
		if view, err = s.service.View(ctx, sessionID); err != nil {
			s.respondError(w, r, err, 0)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ScreenPage(s.navGroups(), view, alert).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render screen", "screen", screenKey, "error", err)
	}
}
