package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

func newRouter(s *Server) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(s.logger))
	api.Use(Logging(s.logger))

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/games", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", s.handleEvents).Methods(http.MethodGet)

	api.HandleFunc("/leaderboard/{game}", s.handleLeaderboard).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
