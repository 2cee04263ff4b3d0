// Package playground serves an interactive tooltip over a WebSocket.
//
// Each connection gets its own session: a headless document, a realtime
// host whose timers run on the session's event loop, and one mounted
// tooltip fixture. The browser page sends gestures as JSON and renders
// the state the server pushes back after every change.
//
// Routes:
//
//	GET /         the playground page
//	GET /ws       session WebSocket
//	GET /metrics  Prometheus metrics for every session
//	GET /healthz  liveness probe
package playground
