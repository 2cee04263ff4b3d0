package playground

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/telemetry"
)

// Server is the playground HTTP server.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	metrics  *telemetry.Metrics
	tracer   *telemetry.Tracer
	active   prometheus.Gauge
	messages *prometheus.CounterVec

	mu       sync.Mutex
	sessions map[*session]struct{}
	wg       sync.WaitGroup
}

// New creates a server. Metrics are registered on cfg.Registry.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()
	logger := cfg.Logger.With("component", "playground")

	factory := promauto.With(cfg.Registry)
	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		metrics: telemetry.NewMetrics(telemetry.WithRegistry(cfg.Registry)),
		tracer:  telemetry.NewTracer(telemetry.WithTracerName("tooltip/playground")),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tooltip",
			Subsystem: "playground",
			Name:      "sessions_active",
			Help:      "Connected playground sessions.",
		}),
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tooltip",
			Subsystem: "playground",
			Name:      "messages_total",
			Help:      "Client messages by type.",
		}, []string{"type"}),
		sessions: make(map[*session]struct{}),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down
// gracefully, closing every session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return terrors.New("T141").WithDetailf("listen on %s", s.cfg.Addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("playground listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return terrors.New("T141").Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeSessions()
	s.wg.Wait()
	if err != nil {
		return terrors.New("T141").WithDetail("shutdown").Wrap(err)
	}
	s.logger.Info("playground stopped")
	return nil
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sess := range s.sessions {
		sess.conn.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", terrors.New("T120").Wrap(err))
		return
	}

	q := r.URL.Query()
	positioner := q.Get("positioner")
	if positioner == "" {
		positioner = s.cfg.Positioner
	}
	sess := newSession(s, conn, positioner, q.Get("touch") == "1")

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	s.wg.Add(1)
	s.active.Inc()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
		s.active.Dec()
		s.wg.Done()
	}()

	sess.run(context.Background())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Sessions()})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(pageHTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
