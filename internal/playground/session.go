package playground

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tooltip/internal/scenario"
	"github.com/vango-dev/tooltip/pkg/dom"
	"github.com/vango-dev/tooltip/pkg/harness"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/popper"
	"github.com/vango-dev/tooltip/pkg/telemetry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

var sessionSeq atomic.Uint64

// sessionHost pushes state after every timer callback.
type sessionHost struct {
	host.Host
	after func()
}

func (h sessionHost) SetTimeout(d time.Duration, fn func()) func() {
	return h.Host.SetTimeout(d, func() {
		fn()
		h.after()
	})
}

// session is one connected page. Everything but the read loop runs on loop.
type session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	loop   *host.Loop
	logger *slog.Logger

	doc     *dom.Document
	host    sessionHost
	static  *popper.Static
	fixture *harness.Fixture
	touch   bool

	warnings *tooltip.Warnings
}

func newSession(s *Server, conn *websocket.Conn, positioner string, touch bool) *session {
	id := strconv.FormatUint(sessionSeq.Add(1), 10)
	logger := s.logger.With("session", id)
	sess := &session{
		id:       id,
		server:   s,
		conn:     conn,
		loop:     host.NewLoop(128, logger),
		logger:   logger,
		doc:      dom.NewDocument(),
		touch:    touch,
		warnings: tooltip.NewWarnings(logger),
	}
	if positioner == scenario.PositionerStatic {
		sess.static = popper.NewStatic(s.cfg.Tooltip.Placement)
	}
	sess.host = sessionHost{
		Host:  host.NewRealtime(sess.loop, sess.doc, touch),
		after: sess.push,
	}
	return sess
}

// run serves the connection until the client goes away or ctx ends.
// Teardown happens here once the loop has exited.
func (sess *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := sess.loop.Run(ctx); err != nil && ctx.Err() == nil {
			sess.logger.Error("session loop stopped", "error", err)
		}
	}()

	sess.loop.Post(sess.start)
	sess.readLoop(ctx)

	cancel()
	<-loopDone
	sess.loop.Close()
	sess.stop()
}

func (sess *session) start() {
	var pos popper.Positioner = popper.Basic{}
	if sess.static != nil {
		pos = sess.static
	}
	obs := telemetry.Multi{sess.server.metrics, sess.server.tracer, telemetry.Log{Logger: sess.logger}}
	f, err := harness.New(sess.host, sess.doc, harness.Options{
		Name:        "playground",
		TriggerText: "Hover me",
		Text:        "Hello from the playground",
		Config:      sess.server.cfg.Tooltip,
		Logger:      sess.logger,
		Controller: []tooltip.Option{
			tooltip.WithPositioner(pos),
			tooltip.WithObserver(obs),
			tooltip.WithLogger(sess.logger),
			tooltip.WithWarnings(sess.warnings),
		},
	})
	if err != nil {
		sess.logger.Error("session mount failed", "error", err)
		sess.send(errorMessage(err))
		return
	}
	sess.fixture = f
	sess.logger.Info("session started", "touch", sess.touch, "static", sess.static != nil)
	sess.push()
}

func (sess *session) stop() {
	if sess.fixture != nil {
		sess.fixture.Close()
		sess.fixture = nil
	}
	sess.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	sess.conn.Close()
	sess.logger.Info("session closed")
}

// readLoop decodes client messages and posts them onto the loop.
func (sess *session) readLoop(ctx context.Context) {
	sess.conn.SetReadLimit(sess.server.cfg.MaxMessageSize)
	for {
		if ctx.Err() != nil {
			return
		}
		if t := sess.server.cfg.ReadTimeout; t > 0 {
			sess.conn.SetReadDeadline(time.Now().Add(t))
		}
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.server.messages.WithLabelValues("invalid").Inc()
			bad := errorMessage(err)
			bad.Code = "T121"
			sess.loop.Post(func() { sess.send(bad) })
			continue
		}
		if err := msg.validate(); err != nil {
			sess.server.messages.WithLabelValues("invalid").Inc()
			sess.loop.Post(func() { sess.send(errorMessage(err)) })
			continue
		}
		sess.server.messages.WithLabelValues(msg.Type).Inc()
		sess.loop.Post(func() { sess.handle(msg) })
	}
}

func (sess *session) handle(msg ClientMessage) {
	f := sess.fixture
	if f == nil {
		return
	}
	switch msg.Type {
	case MsgEvent:
		if n := sess.target(msg.Target); n != nil {
			scenario.Dispatch(sess.doc, n, &scenario.EventStep{
				Type: msg.Event,
				Key:  msg.Key,
				X:    msg.X,
				Y:    msg.Y,
			})
		}
	case MsgConfigure:
		cfg, err := msg.Config.ToConfig()
		if err == nil {
			err = f.Configure(cfg)
		}
		if err != nil {
			sess.send(errorMessage(err))
		}
	case MsgHidden:
		if sess.static == nil || sess.static.Last() == nil {
			sess.send(ErrorMessage{Type: MsgError, Code: "T121", Message: "hidden needs an active static engine"})
			break
		}
		sess.static.Last().SetReferenceHidden(msg.Value)
	case MsgShow:
		if c := f.Controller(); c != nil {
			c.Show()
		}
	case MsgHide:
		if c := f.Controller(); c != nil {
			c.Hide()
		}
	}
	sess.push()
}

func (sess *session) target(name string) *dom.Node {
	switch name {
	case scenario.TargetTooltip:
		return sess.fixture.Tooltip()
	case scenario.TargetOutside:
		return harness.Outside(sess.doc)
	case scenario.TargetBody:
		return sess.doc.Body()
	}
	return sess.fixture.Trigger()
}

// push sends the current state. It runs on the loop.
func (sess *session) push() {
	f := sess.fixture
	if f == nil || f.Controller() == nil {
		return
	}
	ctrl := f.Controller()
	st := StateMessage{
		Type:       MsgState,
		Visible:    ctrl.Visible(),
		Controlled: ctrl.Controlled(),
		Mounted:    f.Tooltip() != nil,
		Placement:  ctrl.Placement(),
		Changes:    len(f.Changes()),
		Listeners:  ctrl.ListenerCount(""),
	}
	if kind, ok := ctrl.Pending(); ok {
		st.Pending = string(kind)
	}
	if st.Mounted {
		st.Tooltip = ctrl.TooltipProps(nil)
		st.Arrow = ctrl.ArrowProps(nil)
	}
	for _, w := range sess.warnings.All() {
		st.Warnings = append(st.Warnings, w.String())
	}
	sess.send(st)
}

func (sess *session) send(v any) {
	sess.conn.SetWriteDeadline(time.Now().Add(sess.server.cfg.WriteTimeout))
	if err := sess.conn.WriteJSON(v); err != nil {
		sess.logger.Debug("write failed", "error", err)
	}
}
