package handlers

import (
	"net/http"

	"golf-backend/internal/dto"
	"golf-backend/internal/services"
	"golf-backend/utils/response"
)

type TournamentHandler struct {
	service *services.TournamentService
}

func NewTournamentHandler(service *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.ListTournaments(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list tournaments")
		return
	}
	response.Success(w, tournaments, "")
}

func (h *TournamentHandler) SearchTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.SearchTournaments(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err, "Failed to search tournaments")
		return
	}
	response.Success(w, tournaments, "")
}

func (h *TournamentHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Leaderboard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Failed to get leaderboard")
		return
	}
	response.Success(w, board, "")
}

func (h *TournamentHandler) EnrichTournament(w http.ResponseWriter, r *http.Request) {
	var req dto.EnrichTournamentRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tournament, err := h.service.EnrichTournament(r.Context(), req.Tournament)
	if err != nil {
		writeError(w, err, "Failed to enrich tournament")
		return
	}
	response.Success(w, tournament, "")
}
