// Package api exposes a small read-only HTTP surface next to the game
// protocol, plus the WebSocket upgrade endpoint.
//
// Endpoints:
//   - GET /healthz         - liveness probe
//   - GET /api/leaderboard - top win counts as JSON
//   - GET /api/sessions    - connected players and their lifecycle state
//   - GET /ws              - WebSocket carrying the line protocol
//
// All responses are JSON. The API never mutates game state; the only way to
// play is through the protocol itself.
package api
