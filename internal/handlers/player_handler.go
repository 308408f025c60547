package handlers

import (
	"net/http"
	"strings"

	"golf-backend/internal/services"
	"golf-backend/utils/response"
)

type PlayerHandler struct {
	service *services.PlayerService
}

func NewPlayerHandler(service *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{service: service}
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list players")
		return
	}
	response.Success(w, players, "")
}

func (h *PlayerHandler) UpdatePlayers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.UpdatePlayers(r.Context())
	if err != nil {
		writeError(w, err, "Failed to update players")
		return
	}
	response.Success(w, result, "Players updated")
}

func (h *PlayerHandler) PlayerDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.PlayerDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Failed to get player")
		return
	}
	response.Success(w, details, "")
}

func (h *PlayerHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.SearchPlayers(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err, "Failed to search players")
		return
	}
	response.Success(w, players, "")
}

func (h *PlayerHandler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ids := strings.Split(r.URL.Query().Get("ids"), ",")
	players, err := h.service.ComparePlayers(r.Context(), ids)
	if err != nil {
		writeError(w, err, "Failed to compare players")
		return
	}
	response.Success(w, players, "")
}

func (h *PlayerHandler) SeasonStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.SeasonStats(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Failed to get player stats")
		return
	}
	response.Success(w, stats, "")
}
