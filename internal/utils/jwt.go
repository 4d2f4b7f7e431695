package utils

import (
	"time" // Time for token expiration

	"storefront/internal/domain" // Roles

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// DefaultTokenTTL is used when no lifetime is configured
const DefaultTokenTTL = 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               uint        `json:"user_id"`  // Custom claim for user ID
	Username             string      `json:"username"` // Login name
	Role                 domain.Role `json:"role"`     // Role at issue time
	jwt.RegisteredClaims             // Standard JWT claims
}

// Principal converts the claims into the caller identity used by services
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Username: c.Username, Role: domain.ParseRole(string(c.Role))}
}

// GenerateJWT creates a signed token for user valid for ttl
func GenerateJWT(user domain.User, secret string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID:   user.ID,       // Custom claim for user ID
		Username: user.Username, // Login name
		Role:     user.Role,     // Role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,                    // Token subject
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
