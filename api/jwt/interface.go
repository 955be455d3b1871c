package apijwt

import (
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Claims is the gateway's view of an authenticated caller: who they are and
// which rooms they may score in.
type Claims struct {
	UserID    sharedtypes.UserID
	Rooms     []sharedtypes.RoomID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AllowsRoom reports whether the claims authorize scoring in the given room.
func (c *Claims) AllowsRoom(room sharedtypes.RoomID) bool {
	for _, r := range c.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// Provider signs and validates gateway tokens.
type Provider interface {
	GenerateToken(claims *Claims, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}
