package api

import (
	"fmt"
	"net/http"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
)

func (s *Server) handleDownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	artifact, err := s.stats.GetArtifact(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("scorecard-%s.xlsx", matchID)))
	_, _ = w.Write(artifact.Workbook)
}

func (s *Server) handleDownloadChart(w http.ResponseWriter, r *http.Request) {
	matchID, ok := matchIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, matchevents.CodeValidation, "invalid match id")
		return
	}

	artifact, err := s.stats.GetArtifact(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(artifact.RunRateChart)
}
