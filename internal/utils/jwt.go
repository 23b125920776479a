package utils

import (
	"errors"  // Error values
	"strconv" // Subject encoding
	"time"    // Token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenOptions configures token signing and verification
type TokenOptions struct {
	Secret   string        // HMAC signing key
	Issuer   string        // iss claim
	Audience string        // aud claim
	TTL      time.Duration // Token lifetime
}

// JWT Claims
type Claims struct {
	Name                 string `json:"name"` // Display name (username)
	Role                 string `json:"role"` // Admin or Freelancer
	jwt.RegisteredClaims                      // Standard JWT claims, Subject holds the freelancer id
}

// FreelancerID decodes the subject claim
func (c *Claims) FreelancerID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ErrMissingSecret is returned when no signing key is configured
var ErrMissingSecret = errors.New("jwt secret is not configured")

// GenerateJWT creates a signed token for a freelancer and returns it with its expiry
func GenerateJWT(id uint, username, role string, opts TokenOptions) (string, time.Time, error) {
	if opts.Secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	now := time.Now()
	expiresAt := now.Add(opts.TTL)
	claims := Claims{
		Name: username, // Display name claim
		Role: role,     // Role claim
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10), // Freelancer id
			Issuer:    opts.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(opts.Secret))     // Sign the token with the secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT parses and validates a token string
func ParseJWT(tokenStr string, opts TokenOptions) (*Claims, error) {
	if opts.Secret == "" {
		return nil, ErrMissingSecret
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Only HS256
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(opts.Secret), nil // Return the secret key for validation
	}, parserOpts...)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
