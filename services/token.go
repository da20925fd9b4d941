package services

import (
	"crypto/sha256"
	"errors"
	"time"

	"taskcal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer     = "taskcal"
	accessTokenTTL  = 60 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

func CreateAccessToken(secret, userID string) (string, error) {
	claims := &model.AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func CreateRefreshToken(secret, userID, tokenID string) (string, error) {
	claims := &model.RefreshClaims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken returns the owner id carried by a valid access token.
func ParseAccessToken(secret, tokenString string) (string, error) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.UserID, nil
}

// ParseRefreshToken returns the owner id and token record id of a valid
// refresh token.
func ParseRefreshToken(secret, tokenString string) (string, string, error) {
	claims := &model.RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid || claims.UserID == "" || claims.TokenID == "" {
		return "", "", errors.New("invalid token claims")
	}
	return claims.UserID, claims.TokenID, nil
}

// HashRefreshToken shortens the token through SHA-256 before bcrypt, which
// caps input at 72 bytes.
func HashRefreshToken(token string) (string, error) {
	sum := sha256.Sum256([]byte(token))
	hashed, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckRefreshToken compares a presented refresh token against its stored hash.
func CheckRefreshToken(hash, token string) bool {
	sum := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hash), sum[:]) == nil
}
