package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"vncrypt-sim/internal/logging"
	"vncrypt-sim/internal/metrics"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
	"vncrypt-sim/internal/sim"
)

// Server exposes the running simulator over HTTP.
type Server struct {
	Sim      *sim.Simulator
	Catalog  *mission.Catalog
	Metrics  *metrics.Metrics
	Progress progress.Store
	tpl      *template.Template
	mux      *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

// NewServer wires the admin routes. catalog, m and store may be nil.
func NewServer(s *sim.Simulator, catalog *mission.Catalog, m *metrics.Metrics, store progress.Store) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	srv := &Server{Sim: s, Catalog: catalog, Metrics: m, Progress: store, tpl: tpl, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /state", s.handleState)
	s.mux.HandleFunc("POST /start", s.handleStart)
	s.mux.HandleFunc("POST /pause", s.handlePause)
	s.mux.HandleFunc("POST /resume", s.handleResume)
	s.mux.HandleFunc("POST /end", s.handleEnd)
	s.mux.HandleFunc("POST /defense", s.handleDefense)
	s.mux.HandleFunc("GET /report", s.handleReport)
	s.mux.HandleFunc("GET /missions", s.handleMissions)
	s.mux.HandleFunc("GET /profile", s.handleProfile)
	s.mux.Handle("GET /metrics", s.Metrics.Handler())
}

// Handler returns the admin routes.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sim.ErrInvalidState), errors.Is(err, sim.ErrNoActivity), errors.Is(err, sim.ErrNotEnded):
		status = http.StatusConflict
	case errors.Is(err, sim.ErrToolNotAllowed):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("admin request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	tools := make([]mission.Tool, 0, len(snap.AllowedTools))
	for _, id := range snap.AllowedTools {
		tools = append(tools, mission.LookupTool(id))
	}
	data := struct {
		Mission  mission.Mission
		Snapshot sim.Snapshot
		Tools    []mission.Tool
		Limit    int
	}{
		Mission:  s.Sim.Mission(),
		Snapshot: snap,
		Tools:    tools,
		Limit:    sim.TimeLimit,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render index", "err", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.Snapshot())
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(context.Context) error) {
	if err := op(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Sim.Snapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Sim.Start)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Sim.Pause)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Sim.Resume)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Sim.EndMission)
}

func (s *Server) handleDefense(w http.ResponseWriter, r *http.Request) {
	tool := mission.ToolID(r.URL.Query().Get("tool"))
	if tool == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing tool"})
		return
	}
	out, err := s.Sim.ApplyDefense(r.Context(), tool)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tool": tool, "outcome": out.String()})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	// the sink must not see a cancelled context when the client goes away
	rep, err := s.Sim.Report(context.WithoutCancel(r.Context()))
	if err != nil && rep.SessionID == "" {
		writeError(w, r, err)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn("progress not recorded", "err", err)
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	if s.Catalog == nil {
		writeJSON(w, http.StatusOK, []mission.Mission{s.Sim.Mission()})
		return
	}
	writeJSON(w, http.StatusOK, s.Catalog.Missions())
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if s.Progress == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no progress store"})
		return
	}
	p, err := s.Progress.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":       p,
		"xpToNextLevel": p.XPToNextLevel(),
		"levelProgress": p.LevelProgress(),
	})
}
