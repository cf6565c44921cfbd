package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kasa/internal/cache"
	"kasa/internal/config"
	"kasa/internal/filterstate"
	"kasa/internal/log"
)

// Server exposes the derived finance views as a JSON API. All
// derivation happens over one cached snapshot per fetch; handlers are
// read-only.
type Server struct {
	http.Server
	cfg     *config.Config
	snaps   *cache.SnapshotCache
	filters *filterstate.Store
	logger  *log.Logger
	limiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run
// server.
//
// Two authentication layers guard the API, with deliberately opposite
// failure modes: the Basic edge gate disappears when no credentials
// are configured (fail open), while the data token check rejects
// everything when no token is configured (fail closed).
func NewServer(cfg *config.Config, snaps *cache.SnapshotCache, filters *filterstate.Store, logger *log.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		snaps:   snaps,
		filters: filters,
		logger:  logger.WithComponent(log.ComponentHTTP),
		limiter: newRateLimiter(),
	}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(securityHeaders)

	// Probes stay outside both auth layers.
	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Group(func(r chi.Router) {
		if cfg.BasicAuthEnabled() {
			r.Use(chimw.BasicAuth("kasa", map[string]string{
				cfg.BasicAuthUser: cfg.BasicAuthPassword,
			}))
		}
		r.Route("/api", func(r chi.Router) {
			r.Use(s.requireDataToken)
			r.Use(s.limiter.middleware)

			r.Get("/data", s.handleData)
			r.Get("/transactions", s.handleTransactions)
			r.Get("/earn", s.handleEarn)
			r.Get("/earn/chart", s.handleEarnChart)
			r.Get("/projects/{name}", s.handleProject)
			r.Get("/balances", s.handleBalances)
			r.Get("/report", s.handleReport)

			r.Route("/filters/{key}", func(r chi.Router) {
				r.Get("/", s.handleFilterLoad)
				r.Put("/", s.handleFilterSave)
				r.Delete("/", s.handleFilterClear)
			})
		})
	})

	s.Server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	return s
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
