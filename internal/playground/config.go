package playground

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Config configures the playground server.
type Config struct {
	// Addr is the listen address (default: "localhost:7070").
	Addr string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize bounds a single client message in bytes.
	MaxMessageSize int64

	// ReadTimeout closes sessions idle for longer. Zero disables it.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single push to the client.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the WebSocket origin. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// Positioner is the engine used when a session does not ask for one:
	// "basic" or "static".
	Positioner string

	// Tooltip is the configuration every session starts with. A nil
	// Trigger defaults to hover and focus.
	Tooltip tooltip.Config

	// Registry receives server and controller metrics. Nil creates one.
	Registry *prometheus.Registry

	// Logger is the server logger. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		Addr:            "localhost:7070",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		MaxMessageSize:  16 * 1024,
		ReadTimeout:     5 * time.Minute,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CheckOrigin:     SameOriginCheck,
		Positioner:      "basic",
		Tooltip: tooltip.Config{
			Trigger: []tooltip.Trigger{tooltip.TriggerHover, tooltip.TriggerFocus},
		},
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Tooltip.Trigger == nil {
		c.Tooltip.Trigger = d.Tooltip.Trigger
	}
	if c.Positioner == "" {
		c.Positioner = d.Positioner
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
