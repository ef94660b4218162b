package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the default lifetime of an access token. Expiry is
// absolute wall-clock, not sliding.
const DefaultTTL = 30 * time.Minute

var (
	ErrMalformed    = errors.New("token is malformed")
	ErrBadSignature = errors.New("token signature is invalid")
	ErrExpired      = errors.New("token is expired")
)

// Service signs and verifies HS256 bearer tokens. The signing secret
// is fixed at startup; rotation is out of scope.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService keeps ttl as given; a zero ttl issues tokens that are
// already expired at verification time.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue embeds subject and issuedAt+ttl as registered claims.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify is pure: validity is decided by signature and expiry alone,
// with no store access.
func (s *Service) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)

	if !ok || claims.Subject == "" {
		return "", ErrMalformed
	}

	return claims.Subject, nil
}
