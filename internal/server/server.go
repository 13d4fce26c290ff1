// Package server exposes stored workouts and their log sheets over HTTP.
package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"tailscale.com/tsnet"

	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/store"
)

// maxBodySize caps uploaded workout documents.
const maxBodySize = 1 << 20

const shutdownTimeout = 10 * time.Second

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	runner   *pipeline.Runner
	defaults pipeline.Options
	secret   string
	log      *log.Logger
	router   chi.Router
}

// New creates a Server with all routes configured. defaults seeds the
// pipeline options of every render; an empty secret disables authentication
// and serves everything as [store.LocalOwner].
func New(st store.Store, runner *pipeline.Runner, defaults pipeline.Options, secret string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:    st,
		runner:   runner,
		defaults: defaults,
		secret:   secret,
		log:      logger.WithPrefix("http"),
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(s.secret))
		r.Get("/me", s.handleMe)
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Get("/workouts/{id}/sheet.{format}", s.handleWorkoutSheet)
		r.Post("/render/{format}", s.handleRender)
	})
}

// ListenConfig selects where [Server.Run] accepts connections.
type ListenConfig struct {
	// Addr is the TCP address used without Tailscale.
	Addr string

	// Tailscale serves on port 80 of the tailnet node Hostname instead,
	// keeping node state in StateDir.
	Tailscale bool
	Hostname  string
	StateDir  string
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg ListenConfig) error {
	ln, closeLn, err := s.listen(cfg)
	if err != nil {
		return err
	}
	defer closeLn()

	srv := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) listen(cfg ListenConfig) (net.Listener, func(), error) {
	if !cfg.Tailscale {
		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return nil, nil, err
		}
		s.log.Info("server starting", "addr", ln.Addr().String())
		return ln, func() {}, nil
	}

	ts := &tsnet.Server{
		Hostname: cfg.Hostname,
		Dir:      cfg.StateDir,
		Logf:     func(format string, args ...any) { s.log.Debugf(format, args...) },
	}
	if err := ts.Start(); err != nil {
		return nil, nil, err
	}
	ln, err := ts.Listen("tcp", ":80")
	if err != nil {
		ts.Close()
		return nil, nil, err
	}
	s.log.Info("tsnet server starting", "hostname", cfg.Hostname)
	return ln, func() { ts.Close() }, nil
}
