package scoringdb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrNotFound indicates the requested match, innings, or event row does
	// not exist. The service layer decides whether that is a domain failure.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict indicates an optimistic innings update lost the
	// race: the stored version no longer matches the one that was read.
	ErrVersionConflict = errors.New("innings version conflict")

	// ErrNoRowsAffected indicates an UPDATE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
