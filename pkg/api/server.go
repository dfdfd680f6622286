// pkg/api/server.go

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/carverauto/carbonradar/pkg/db"
	"github.com/carverauto/carbonradar/pkg/metrics"
)

const defaultRunsLimit = 100

// Server exposes the computed footprints and run log over HTTP.
type Server struct {
	store  FootprintReader
	reg    *metrics.Registry
	router *mux.Router
}

// NewServer creates the read-only API over the history store. reg may be
// nil, in which case no /metrics endpoint is mounted.
func NewServer(store FootprintReader, reg *metrics.Registry) *Server {
	s := &Server{
		store:  store,
		reg:    reg,
		router: mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/footprints", s.getFootprints).Methods("GET")
	s.router.HandleFunc("/api/footprints/{line}", s.getLineFootprints).Methods("GET")
	s.router.HandleFunc("/api/footprints/{line}/{serial}", s.getFootprint).Methods("GET")
	s.router.HandleFunc("/api/runs", s.getRuns).Methods("GET")
	s.router.HandleFunc("/healthz", s.healthz).Methods("GET")

	if s.reg != nil {
		s.router.Handle("/metrics", s.reg.Handler()).Methods("GET")
	}
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start(addr string) error {
	log.Printf("Starting API server on %s", addr)

	return http.ListenAndServe(addr, s.router)
}

func (s *Server) getFootprints(w http.ResponseWriter, r *http.Request) {
	footprints, err := s.store.ListFootprints(r.Context(), "")
	if err != nil {
		log.Printf("Error listing footprints: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.writeJSON(w, footprints)
}

func (s *Server) getLineFootprints(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	footprints, err := s.store.ListFootprints(r.Context(), vars["line"])
	if err != nil {
		log.Printf("Error listing footprints for line %s: %v", vars["line"], err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	if len(footprints) == 0 {
		http.Error(w, "Production line not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, footprints)
}

func (s *Server) getFootprint(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	footprint, err := s.store.GetFootprint(r.Context(), vars["line"], vars["serial"])
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Footprint not found", http.StatusNotFound)
			return
		}

		log.Printf("Error getting footprint %s/%s: %v", vars["line"], vars["serial"], err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.writeJSON(w, footprint)
}

func (s *Server) getRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing runs: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.writeJSON(w, runs)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
