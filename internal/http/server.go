package httpserver

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jd-cinema/cinema-api/internal/config"
	"github.com/jd-cinema/cinema-api/internal/omdb"
	"github.com/jd-cinema/cinema-api/internal/repository"
	"github.com/jd-cinema/cinema-api/internal/store"
)

//go:embed openapi.yaml
var openAPIDoc []byte

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	store   *store.Store
	repo    *repository.Repository
	omdb    omdb.Client
	logger  *log.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, omdbClient omdb.Client, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		repo:   repo,
		omdb:   omdbClient,
		logger: logger,
		router: r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/openapi.yaml", s.handleOpenAPI)

	// Internal admin surface: every route sits behind the credential gate.
	s.router.Route("/int/v1", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Route("/screenings", func(r chi.Router) {
			r.Get("/", s.handleAdminListScreenings)
			r.Put("/", s.handleAddScreening)
			r.Delete("/", s.handleDeleteScreening)
		})
	})

	// Public browse-and-review surface.
	s.router.Route("/ext/v1", func(r chi.Router) {
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.handleListMovies)
			r.Route("/{movieId}", func(r chi.Router) {
				r.Get("/", s.handleGetMovie)
				r.Get("/screenings", s.handleListScreenings)
				r.Get("/details", s.handleGetDetails)
				r.Get("/rating", s.handleGetRating)
			})
		})
		r.Post("/reviews", s.handleSubmitReview)
	})
}

// requireAdmin gates the internal surface on the configured credential pair.
// Failures are rejected before any store access happens.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.cfg.AdminUser || pass != s.cfg.AdminPassword {
			w.Header().Set("WWW-Authenticate", `Basic realm="cinema-api internal"`)
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start boots the HTTP server and blocks until shutdown or failure.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDoc)
}
