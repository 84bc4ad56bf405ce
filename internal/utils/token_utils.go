package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed payload of an application session token.
// Subject carries the user id; Role and DisplayName ride as custom claims so
// the middleware can authorize without a store round trip.
type SessionClaims struct {
	Role        string `json:"role"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateSessionJWT signs a session token for the given identity with the
// configured validity window.
func GenerateSessionJWT(userID, role, displayName, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	jti, err := GenerateSecureRandomString(16)
	if err != nil {
		return "", err
	}
	claims := SessionClaims{
		Role:        role,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionJWT parses a session token string and validates its signature
// and standard claims. It returns the SessionClaims if the token is valid.
func ParseSessionJWT(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
