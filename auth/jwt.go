package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSigningAlg = errors.New("invalid signing algorithm")
	ErrExpiredToken      = errors.New("token has expired")
	ErrCorruptedToken    = errors.New("token is corrupted")
)

// guestClaims fields must be exported for JSON serialization. Subject carries
// the player id.
type guestClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies guest identity tokens. A token binds a
// display name to a freshly minted stable player id, keeping the logical
// player identity separate from any single connection.
type JWTManager struct {
	secretKey []byte
	maxAge    time.Duration
}

func NewJWTManager(secretKey []byte, maxAge time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: secretKey,
		maxAge:    maxAge,
	}
}

func (m *JWTManager) Generate(name string, now time.Time) (token, playerID string, err error) {
	playerID = uuid.NewString()
	claims := guestClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("generating guest token: %w", err)
	}
	return signed, playerID, nil
}

func (m *JWTManager) Verify(tokenString string) (playerID, name string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &guestClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningAlg
		}
		return m.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSigningAlg):
			return "", "", err
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", "", ErrExpiredToken
		default:
			return "", "", ErrCorruptedToken
		}
	}

	claims, ok := token.Claims.(*guestClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", "", ErrCorruptedToken
	}
	return claims.Subject, claims.Name, nil
}
