package identity

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var jwtKey = []byte(os.Getenv("JWT_KEY"))

// JWTClaims are the token claims issued by the external identity provider.
// This service only validates and reads them; it never issues tokens.
type JWTClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // admin, professor or student
	jwt.RegisteredClaims
}

// ParseToken validates a signed token string and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ActorFrom extracts the acting user's type and id from the request context
// for audit logging. Unauthenticated or malformed contexts fall back to a
// system actor so logging never blocks the primary operation.
func ActorFrom(c echo.Context) (actorType, actorID string) {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return "system", ""
	}
	role := claims.Role
	if role == "" {
		role = "user"
	}
	return role, claims.Subject
}
