package apijwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// roomClaims is the JWT claims structure on the wire.
type roomClaims struct {
	jwt.RegisteredClaims
	Rooms []string `json:"rooms,omitempty"`
}

type provider struct {
	secret []byte
}

// NewProvider creates an HMAC-signed JWT provider.
func NewProvider(secret string) Provider {
	return &provider{secret: []byte(secret)}
}

// GenerateToken creates a signed token from the given claims.
func (p *provider) GenerateToken(domainClaims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	rooms := make([]string, len(domainClaims.Rooms))
	for i, r := range domainClaims.Rooms {
		rooms[i] = string(r)
	}

	claims := &roomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   string(domainClaims.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Rooms: rooms,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken validates a token and returns the claims if valid.
func (p *provider) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &roomClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*roomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	domainClaims := &Claims{
		UserID: sharedtypes.UserID(claims.Subject),
	}
	for _, r := range claims.Rooms {
		domainClaims.Rooms = append(domainClaims.Rooms, sharedtypes.RoomID(r))
	}
	if claims.ExpiresAt != nil {
		domainClaims.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		domainClaims.IssuedAt = claims.IssuedAt.Time
	}
	return domainClaims, nil
}
