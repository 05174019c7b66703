package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "authgw/pkg/domain-errors"
)

// Scheme is the authorization scheme of every issued token.
const Scheme = "Bearer"

// Token is a signed bearer token bound to the verified username.
type Token struct {
	Value  string `json:"value"`
	Scheme string `json:"scheme"`
}

// Claims represents the JWT claims for our access tokens. The username
// travels as the subject; no verification payload fields are embedded.
type Claims struct {
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// New creates the token issuer with a bounded validity window.
func New(signingKey, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue mints a token for the given username. The caller must already have
// confirmed the identity; issuance is pure construction from identity and
// time and does not re-verify anything.
func (s *Service) Issue(username string) (Token, error) {
	if username == "" {
		return Token{}, dErrors.New(dErrors.CodeInternal, "cannot issue token without an identity")
	}

	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return Token{}, dErrors.Wrap(err, dErrors.CodeInternal, "sign token")
	}
	return Token{Value: signed, Scheme: Scheme}, nil
}

// Validate parses and verifies a token string, returning its claims.
// Expiry is enforced here, on the consuming side; issuance never checks it.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}
