// internal/httpserver/server.go
//
// HTTP analysis API for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Analysis endpoints: GET /feedback, POST /candidates, POST /rank.
//
// Notes:
//   - Stateless: each request carries the full guess history and is replayed
//     into a fresh assist session. Nothing about a game is stored server-side.
//   - POST /rank is the expensive call. Results are cached by RankKey and the
//     route requires a bearer token when JWT_SECRET is configured.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Deps are the collaborators the handlers work against.
type Deps struct {
	Words  words.Provider
	Ranker *entropy.Ranker
	Cache  store.Cache // nil disables caching
}

// Server bundles the router and its dependencies.
type Server struct {
	r           *chi.Mux
	words       words.Provider
	ranker      *entropy.Ranker
	cache       store.Cache
	rankTimeout time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, deps Deps) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		words:       deps.Words,
		ranker:      deps.Ranker,
		cache:       deps.Cache,
		rankTimeout: cfg.RankTimeout,
	}
	if s.ranker == nil {
		s.ranker = entropy.NewRanker(entropy.WithWorkers(cfg.RankWorkers))
	}
	if s.rankTimeout <= 0 {
		s.rankTimeout = 30 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	// Ranking enforces its own deadline first and answers 504 with partial results.
	s.r.Use(chimw.Timeout(s.rankTimeout + 5*time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "/metrics", "/debug/words", "GET /feedback", "POST /candidates", "POST /rank"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Get("/debug/words", s.handleWordStats)

	// --- analysis ---
	s.r.Get("/feedback", s.handleFeedback)
	s.r.Post("/candidates", s.handleCandidates)
	if cfg.AuthEnabled() {
		s.r.With(requireAuth([]byte(cfg.JWTSecret))).Post("/rank", s.handleRank)
	} else {
		s.r.Post("/rank", s.handleRank)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
