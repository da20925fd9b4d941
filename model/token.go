package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID  string `json:"userId"`
	TokenID string `json:"tokenId"`
	jwt.RegisteredClaims
}

// RefreshTokenRecord is the stored side of an issued refresh token. Only the
// bcrypt hash of the token ever reaches Firestore.
type RefreshTokenRecord struct {
	UserID    string    `firestore:"userId"`
	TokenHash string    `firestore:"tokenHash"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}
