package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/logging"
	"github.com/JonMunkholm/opsconsole/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxActionLogLimit caps the limit parameter of /api/actions.
const maxActionLogLimit = 200

// handleListScreens returns all screens organized by group.
func (s *Server) handleListScreens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListScreensByGroup())
}

// handleMount mounts a table for a screen. Query parameters set the initial
// view state.
func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	view, err := s.service.Mount(ctx, chi.URLParam(r, "screenKey"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if !q.Empty() {
		sessionID := view.Session.ID
		if view, err = s.service.Apply(ctx, sessionID, q); err != nil {
			_ = s.service.Unmount(ctx, sessionID)
			s.respondError(w, r, err, 0)
			return
		}
	}

	s.respondView(w, r, view, http.StatusCreated)
}

// handleView applies the query parameters, if any, and returns the current page.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	var view core.View
	if q.Empty() {
		view, err = s.service.View(ctx, sessionID)
	} else {
		view, err = s.service.Apply(ctx, sessionID, q)
	}
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	s.respondView(w, r, view, http.StatusOK)
}

type selectionRequest struct {
	Op  core.SelectionOp `json:"op"`
	Key string           `json:"key"`
}

// handleSelection changes the selection. The body is either JSON or form
// values with op and key.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err), 0)
			return
		}
	} else {
		req.Op = core.SelectionOp(r.FormValue("op"))
		req.Key = r.FormValue("key")
	}

	view, err := s.service.Select(r.Context(), chi.URLParam(r, "sessionID"), req.Op, req.Key)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.respondView(w, r, view, http.StatusOK)
}

// handleClickRow returns the detail view of a row.
func (s *Server) handleClickRow(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.ClickRow(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "rowKey"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if isHTMX(r) {
		s.render(w, r, templates.RowDetail(detail))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleInvokeAction runs a row action. HTMX clients get the refreshed table
// and a showToast trigger carrying the notice.
func (s *Server) handleInvokeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	res, err := s.service.InvokeAction(ctx, sessionID, chi.URLParam(r, "actionID"), chi.URLParam(r, "rowKey"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if !isHTMX(r) {
		writeJSON(w, http.StatusOK, res)
		return
	}

	info, err := s.service.Info(ctx, sessionID)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeTrigger(w, "showToast", res.Notice)
	s.render(w, r, templates.TablePartial(core.View{Session: info, Snapshot: res.Snapshot}))
}

// handleUnmount closes a session.
func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Unmount(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecentActions returns the newest action-log entries.
func (s *Server) handleRecentActions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.RecentActions(r.Context(), parseLimit(r, 50, maxActionLogLimit))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if isHTMX(r) {
		s.render(w, r, templates.ActionLog(entries))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// respondView writes a view as the table fragment for HTMX and as JSON
// otherwise.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, view core.View, status int) {
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := templates.TablePartial(view).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render table", "session_id", view.Session.ID, "error", err)
		}
		return
	}
	writeJSON(w, status, view)
}

// render writes an HTML fragment with status 200.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render fragment", "path", r.URL.Path, "error", err)
	}
}
