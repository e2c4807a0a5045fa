package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/radiantjxn/groups-catalog/internal/group"
	"github.com/radiantjxn/groups-catalog/internal/logger"
	"github.com/radiantjxn/groups-catalog/internal/refresh"
	"github.com/radiantjxn/groups-catalog/internal/storage"
)

// Refresher is the part of the refresh coordinator the server uses.
type Refresher interface {
	Refresh(ctx context.Context, pages []group.SourcePage) (*refresh.Result, error)
	Status() refresh.Status
}

// Server exposes the refresh pipeline and the published catalog over HTTP.
type Server struct {
	coord Refresher
	store *storage.Store
	pages []group.SourcePage
	log   *logger.Logger
}

// New creates a server. pages is the configured source-page list reported by
// /api/sources and used when a refresh request carries none.
func New(coord Refresher, store *storage.Store, pages []group.SourcePage, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New(logger.LevelInfo, io.Discard)
	}
	if len(pages) == 0 {
		pages = group.DefaultSourcePages()
	}
	return &Server{coord: coord, store: store, pages: pages, log: log}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/refresh", s.handleRefresh)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/sources", s.handleSources)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	return mux
}

// ListenAndServe blocks serving on addr. Refreshes run synchronously inside
// the handler, so no write timeout is set.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", logger.Fields{"addr": addr})
	return srv.ListenAndServe()
}

type refreshRequest struct {
	Pages []group.SourcePage `json:"pages"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	var req refreshRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
			return
		}
	}
	pages := req.Pages
	if len(pages) == 0 {
		pages = s.pages
	}

	// A started run must finish and publish even if the requester goes away,
	// so the pipeline does not inherit the request's cancellation.
	res, err := s.coord.Refresh(context.WithoutCancel(r.Context()), pages)
	if err != nil {
		var rle *refresh.RateLimitedError
		switch {
		case errors.Is(err, refresh.ErrRefreshInProgress):
			writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
		case errors.As(err, &rle):
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":         err.Error(),
				"nextRefreshAt": rle.NextRefreshAt.UTC().Format(time.RFC3339),
			})
		default:
			body := map[string]any{"error": err.Error()}
			if res != nil {
				body["logs"] = res.Logs
			}
			writeJSON(w, http.StatusInternalServerError, body)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"groupCount":  res.GroupCount,
		"lastUpdated": res.LastUpdated.UTC().Format(time.RFC3339),
		"logs":        res.Logs,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	st := s.coord.Status()
	body := map[string]any{"inProgress": st.InProgress}
	if !st.LastRefreshAt.IsZero() {
		body["lastSuccessfulRefreshAt"] = st.LastRefreshAt.UTC().Format(time.RFC3339)
		body["nextRefreshAt"] = st.NextRefreshAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": s.pages})
}

// handleCatalog serves the published artifact file directly so consumers see
// exactly what the last refresh wrote.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	path := s.store.CatalogPath()
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no catalog published yet"})
		return
	}
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("writing response", nil, err)
	}
}
