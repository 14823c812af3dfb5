package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type lobbyCounter interface {
	LobbyCount() int
}

type healthResponse struct {
	Status  string `json:"status"`
	Lobbies int    `json:"lobbies"`
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func healthHandler(logger *slog.Logger, lobbies lobbyCounter) http.HandlerFunc {
	log := logger.With("method", "healthHandler")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Lobbies: lobbies.LobbyCount()}); err != nil {
			log.Error("failed to write health response", "error", err)
		}
	}
}
