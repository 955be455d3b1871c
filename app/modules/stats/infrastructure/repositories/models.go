package statsdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// ScorecardArtifact is the persisted scorecard bundle of a finished match:
// the workbook and the run-rate chart, ready for download. One row per
// match; a rebuilt artifact replaces the previous one.
type ScorecardArtifact struct {
	bun.BaseModel `bun:"table:scorecard_artifacts,alias:sa"`

	MatchID      sharedtypes.MatchID `bun:"match_id,pk,type:uuid"`
	RoomID       sharedtypes.RoomID  `bun:"room_id,notnull"`
	ResultText   string              `bun:"result_text,notnull"`
	Workbook     []byte              `bun:"workbook,notnull"`
	RunRateChart []byte              `bun:"run_rate_chart,notnull"`
	GeneratedAt  time.Time           `bun:"generated_at,notnull"`
}
