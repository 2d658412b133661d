package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fairpitch/matchcore/internal/publish"
	"github.com/fairpitch/matchcore/internal/store"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

// Version is reported on every response for verifier compatibility checks.
const Version = "1.0.0"

// Server exposes the integrity core over HTTP: match validation, replay
// verification, eligibility, and the appeal workflow. The core itself does
// no I/O; this is its boundary.
type Server struct {
	db          store.DB
	suspensions *suspension.Store
	validator   *validate.Validator
	publisher   *publish.Publisher
	logger      *log.Logger
	startTime   time.Time
}

// NewServer creates an API server. db and publisher may be nil: without a
// database the server runs purely in memory, and without a publisher no
// events are fanned out.
func NewServer(db store.DB, suspensions *suspension.Store, validator *validate.Validator, publisher *publish.Publisher) *Server {
	return &Server{
		db:          db,
		suspensions: suspensions,
		validator:   validator,
		publisher:   publisher,
		logger:      log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime:   time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/replay/hash", s.handleRecordReplayHash)
		r.Post("/replay/verify", s.handleVerifyReplay)
		r.Get("/players/{playerID}/eligibility", s.handleEligibility)
		r.Post("/suspensions/{suspensionID}/appeal", s.handleSubmitAppeal)
		r.Post("/appeals/{suspensionID}/resolve", s.handleResolveAppeal)
	})

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Matchcore-Version", Version)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        Version,
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
		"database":       s.db != nil,
		"publisher":      s.publisher != nil,
	})
}
