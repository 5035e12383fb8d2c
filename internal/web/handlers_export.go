package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/logging"
	"github.com/go-chi/chi/v5"
)

// handleExport streams every match of a session as CSV, in the current sort
// order and ignoring pagination. Headers are only sent once the first line
// is ready, so a rejected export still gets a proper error response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	info, err := s.service.Info(ctx, sessionID)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	log := logging.WithFields(ctx, "session_id", sessionID, "screen", info.Screen.Key)
	filename := fmt.Sprintf("%s_%s.csv", info.Screen.Key, time.Now().Format("2006-01-02"))
	cw := csv.NewWriter(w)
	started := false

	err = s.service.Export(ctx, sessionID, func(row []string) error {
		if !started {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", attachmentName(filename))
			w.WriteHeader(http.StatusOK)
			started = true
		}
		return cw.Write(row)
	})
	if err != nil {
		if !started {
			if errors.Is(err, core.ErrTooManyExports) {
				w.Header().Set("Retry-After", "10")
			}
			s.respondError(w, r, err, 0)
			return
		}
		// Headers are out; the client sees a truncated file.
		log.Error("export interrupted", "error", err)
		return
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error("export flush failed", "error", err)
	}
}
