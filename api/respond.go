package api

import (
	"encoding/json"
	"errors"
	"net/http"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
)

type errorBody struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, errorBody{Code: code, Error: msg})
}

// statusForRejection maps a scoring rejection code onto an HTTP status.
func statusForRejection(code string) int {
	switch code {
	case matchevents.CodeValidation:
		return http.StatusBadRequest
	case matchevents.CodeRuleViolation:
		return http.StatusUnprocessableEntity
	case matchevents.CodeNotFound:
		return http.StatusNotFound
	case matchevents.CodeInvalidState, matchevents.CodeNothingToUndo, matchevents.CodeConcurrencyConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps domain sentinels onto HTTP statuses; anything
// unrecognized is an internal error.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoringdomain.ErrValidation):
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, err.Error())
	case errors.Is(err, scoringdomain.ErrRuleViolation):
		respondError(w, http.StatusUnprocessableEntity, matchevents.CodeRuleViolation, err.Error())
	case errors.Is(err, scoringdomain.ErrInvalidState):
		respondError(w, http.StatusConflict, matchevents.CodeInvalidState, err.Error())
	case errors.Is(err, scoringdomain.ErrNothingToUndo):
		respondError(w, http.StatusConflict, matchevents.CodeNothingToUndo, err.Error())
	case errors.Is(err, scoringdb.ErrNotFound), errors.Is(err, statsdb.ErrNotFound):
		respondError(w, http.StatusNotFound, matchevents.CodeNotFound, "not found")
	default:
		respondError(w, http.StatusInternalServerError, "", "internal error")
	}
}
