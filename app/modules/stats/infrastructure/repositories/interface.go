package statsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Repository is the persistence surface of the stats module.
type Repository interface {
	// UpsertArtifact stores the artifact, replacing any previous build for
	// the same match.
	UpsertArtifact(ctx context.Context, db bun.IDB, artifact *ScorecardArtifact) error
	// GetArtifact returns the stored artifact, or ErrNotFound.
	GetArtifact(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*ScorecardArtifact, error)
}
