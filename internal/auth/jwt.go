package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the token payload issued by the identity provider.
// The subject claim carries the provider's user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// ParseSessionToken verifies an HS256 session token against the secret
// shared with the identity provider and returns the external user id.
func ParseSessionToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}
