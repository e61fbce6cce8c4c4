package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 30 * 24 * time.Hour

// GenerateToken mints an HS256 bearer token for the given client id. Tokens
// are issued out-of-band (ops tooling, tests); the service itself only
// verifies them.
func GenerateToken(secret []byte, clientID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": clientID,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the client id.
func ParseToken(secret []byte, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(uid), nil
}
