package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
	"github.com/hoysala26/multiplayer-gaming-server/session"
)

// Server is the HTTP status server.
type Server struct {
	reg    *session.Registry
	scores leaderboard.Store
	router chi.Router
}

// New creates the server. wsHandler, when non-nil, is mounted at /ws.
func New(reg *session.Registry, scores leaderboard.Store, wsHandler http.HandlerFunc) *Server {
	s := &Server{
		reg:    reg,
		scores: scores,
		router: chi.NewRouter(),
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/leaderboard", s.handleLeaderboard)
	s.router.Get("/api/sessions", s.handleSessions)
	if wsHandler != nil {
		s.router.Get("/ws", wsHandler)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	scores, err := s.scores.TopScores(5)
	if err != nil {
		log.Error().Err(err).Msg("failed to read leaderboard")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "leaderboard unavailable"})
		return
	}
	if scores == nil {
		scores = []leaderboard.Score{}
	}
	respondJSON(w, http.StatusOK, scores)
}

// sessionInfo is one connected player in the /api/sessions response.
type sessionInfo struct {
	Username string `json:"username"`
	State    string `json:"state"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	clients := s.reg.Snapshot()
	infos := make([]sessionInfo, 0, len(clients))
	for _, c := range clients {
		infos = append(infos, sessionInfo{Username: c.Name(), State: c.State()})
	}
	respondJSON(w, http.StatusOK, infos)
}
