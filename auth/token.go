package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hassaan1220/Ecommerce-Shopsy/models"
)

// TokenTTL is the session validity window.
const TokenTTL = time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expired token. Callers must treat them all as "no
// session".
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed session assertion carried by the client. Nothing is
// persisted server-side; the token itself is the store of truth.
type Claims struct {
	UserID    uint   `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for the user, valid for TokenTTL from
// now. Role falls back to "user" when the row has none.
func IssueToken(secret string, user *models.User) (string, error) {
	role := user.Role
	if role == "" {
		role = "user"
	}
	claims := Claims{
		UserID:    user.ID,
		FirstName: user.FirstName,
		Email:     user.Email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a session token. Any failure mode maps
// to ErrInvalidToken.
func VerifyToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
