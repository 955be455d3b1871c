package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apijwt "github.com/crease-live/crease-backend/api/jwt"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

func matchIDFromRequest(r *http.Request) (sharedtypes.MatchID, bool) {
	id, err := sharedtypes.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		return sharedtypes.MatchID{}, false
	}
	return id, true
}

// deliveryRequest is the HTTP body for recording one delivery. MatchID,
// RoomID, and RequestedBy come from the URL and the caller's token, never
// the body.
type deliveryRequest struct {
	Outcome      sharedtypes.DeliveryOutcome `json:"outcome"`
	Runs         int                         `json:"runs"`
	ExtraRuns    int                         `json:"extra_runs"`
	StrikerID    sharedtypes.PlayerID        `json:"striker_id"`
	NonStrikerID sharedtypes.PlayerID        `json:"non_striker_id"`
	BowlerID     sharedtypes.PlayerID        `json:"bowler_id"`
	Wicket       *matchevents.WicketInfo     `json:"wicket,omitempty"`
}

func (s *Server) handleRecordDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	var body deliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid request body")
		return
	}

	claims, roomID, ok := s.authorizeMatchRoom(w, r, matchID)
	if !ok {
		return
	}

	result, err := s.scoring.RecordDelivery(ctx, matchevents.DeliveryRequestedPayloadV1{
		MatchID:      matchID,
		RoomID:       roomID,
		RequestedBy:  claims.UserID,
		Outcome:      body.Outcome,
		Runs:         body.Runs,
		ExtraRuns:    body.ExtraRuns,
		StrikerID:    body.StrikerID,
		NonStrikerID: body.NonStrikerID,
		BowlerID:     body.BowlerID,
		Wicket:       body.Wicket,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Record delivery failed",
			attr.MatchID("match_id", matchID),
			attr.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	if result.IsFailure() {
		respondJSON(w, statusForRejection(result.Failure.Code), result.Failure)
		return
	}
	respondJSON(w, http.StatusCreated, result.Success)
}

func (s *Server) handleUndoDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	claims, roomID, ok := s.authorizeMatchRoom(w, r, matchID)
	if !ok {
		return
	}

	result, err := s.scoring.UndoLastDelivery(ctx, matchevents.UndoRequestedPayloadV1{
		MatchID:     matchID,
		RoomID:      roomID,
		RequestedBy: claims.UserID,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Undo delivery failed",
			attr.MatchID("match_id", matchID),
			attr.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	if result.IsFailure() {
		respondJSON(w, statusForRejection(result.Failure.Code), result.Failure)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

type matchStateResponse struct {
	Match   *scoringdomain.Match     `json:"match"`
	Innings []*scoringdomain.Innings `json:"innings"`
}

func (s *Server) handleGetMatchState(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	m, innings, err := s.scoring.GetMatchState(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matchStateResponse{Match: m, Innings: innings})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	inningsNumber, err := strconv.Atoi(r.URL.Query().Get("innings"))
	if err != nil || inningsNumber < 1 {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "innings query parameter must be a positive integer")
		return
	}

	events, err := s.scoring.ListEvents(r.Context(), matchID, inningsNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

// authorizeMatchRoom resolves the match's room and checks it against the
// caller's claims. It writes the response itself on failure.
func (s *Server) authorizeMatchRoom(w http.ResponseWriter, r *http.Request, matchID sharedtypes.MatchID) (*apijwt.Claims, sharedtypes.RoomID, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "", "unauthorized")
		return nil, "", false
	}

	m, _, err := s.scoring.GetMatchState(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return nil, "", false
	}

	if !claims.AllowsRoom(m.RoomID) {
		respondError(w, http.StatusForbidden, "", "room not authorized")
		return nil, "", false
	}
	return claims, m.RoomID, true
}
