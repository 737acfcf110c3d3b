package handlers

import (
	"net/http"

	"github.com/khelmitra/scoreboard/middleware"
	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: ms,
	}
}

func (h *MatchHandler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.MatchStatusLive)
}

// ListUpcomingMatches lists scheduled matches.
func (h *MatchHandler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.MatchStatusScheduled)
}

func (h *MatchHandler) ListCompletedMatches(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.MatchStatusCompleted)
}

func (h *MatchHandler) listByStatus(w http.ResponseWriter, r *http.Request, status models.MatchStatus) {
	sportID, err := getSportIDFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), status, sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"matches": matches}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatchDetail(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": match}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.UpdateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.matchService.UpdateScore(r.Context(), currentUserID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"score": score}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
