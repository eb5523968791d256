package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Nydauron/champstandings/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server serves the most recently generated report as read-only JSON.
type Server struct {
	current atomic.Pointer[report.Report]
	logger  *slog.Logger
	router  chi.Router
}

type Options struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func New(rep *report.Report, opts Options) *Server {
	s := &Server{logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.current.Store(rep)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)
	r.Route("/series", func(sr chi.Router) {
		sr.Get("/", s.listSeries)
		sr.Get("/{name}", s.getSeries)
		sr.Get("/{name}/weeks/{week}", s.getWeek)
	})
	s.router = r
	return s
}

// Replace swaps in a newly generated report.
func (s *Server) Replace(rep *report.Report) {
	s.current.Store(rep)
}

func (s *Server) Report() *report.Report {
	return s.current.Load()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type seriesSummary struct {
	Name  string `json:"name"`
	Weeks int    `json:"weeks"`
	Error string `json:"error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listSeries(w http.ResponseWriter, r *http.Request) {
	rep := s.Report()
	out := make([]seriesSummary, 0, len(rep.Series))
	for _, series := range rep.Series {
		out = append(out, seriesSummary{Name: series.Name, Weeks: len(series.Weeks), Error: series.Error})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSeries(w http.ResponseWriter, r *http.Request) {
	series, ok := s.Report().FindSeries(chi.URLParam(r, "name"))
	if !ok {
		http.Error(w, "series not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) getWeek(w http.ResponseWriter, r *http.Request) {
	series, ok := s.Report().FindSeries(chi.URLParam(r, "name"))
	if !ok {
		http.Error(w, "series not found", http.StatusNotFound)
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		http.Error(w, "week must be a number", http.StatusBadRequest)
		return
	}
	week, ok := series.FindWeek(n)
	if !ok {
		http.Error(w, "week not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
