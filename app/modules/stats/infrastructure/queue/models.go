package statsqueue

import (
	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
)

// ScorecardJob asks the worker to build the scorecard artifact for one
// finished match. Args carry the completion event's result line so the
// worker never re-derives it.
type ScorecardJob struct {
	MatchID string                             `json:"match_id"`
	Request statsservice.BuildScorecardRequest `json:"request"`
}

// Kind returns the job type identifier for River.
func (ScorecardJob) Kind() string { return "match_scorecard" }

// JobInfo represents information about a queued job (for debugging/monitoring).
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	MatchID     string `json:"match_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
