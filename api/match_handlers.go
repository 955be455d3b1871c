package api

import (
	"encoding/json"
	"net/http"

	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params matchservice.CreateMatchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid request body")
		return
	}

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	if !claims.AllowsRoom(params.RoomID) {
		respondError(w, http.StatusForbidden, "", "room not authorized")
		return
	}

	m, err := s.matches.CreateMatch(ctx, params)
	if err != nil {
		s.logger.WarnContext(ctx, "Create match failed",
			attr.RoomID("room_id", params.RoomID),
			attr.Error(err),
		)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

type startMatchRequest struct {
	BattingFirst sharedtypes.TeamTag `json:"batting_first"`
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	var body startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid request body")
		return
	}

	if _, _, ok := s.authorizeMatchRoom(w, r, matchID); !ok {
		return
	}

	m, err := s.matches.StartMatch(r.Context(), matchID, body.BattingFirst)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleAdvanceInnings(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	if _, _, ok := s.authorizeMatchRoom(w, r, matchID); !ok {
		return
	}

	m, err := s.matches.AdvanceInnings(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleAbandonMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	if _, _, ok := s.authorizeMatchRoom(w, r, matchID); !ok {
		return
	}

	m, err := s.matches.AbandonMatch(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleGetScorecard(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	card, err := s.matches.GetScorecard(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}
