package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// TokenTTL is the fixed validity window of every session token.
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrEmptySecret is returned when a codec is built without a signing secret.
	ErrEmptySecret = errors.New("token secret must not be empty")
	// ErrEmptySubject is returned when issuing a token for an empty user id.
	ErrEmptySubject = errors.New("token subject must not be empty")
	// ErrInvalidToken wraps every verification failure.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenVerifier validates session tokens. Both the API gate and the edge guard depend on it.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string      `json:"subject"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens. It is immutable and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(tc *TokenCodec) {
		if now != nil {
			tc.now = now
		}
	}
}

// NewTokenCodec builds a codec bound to secret.
func NewTokenCodec(secret string, opts ...CodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	tc := &TokenCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(tc)
	}
	tc.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	return tc, nil
}

// Issue signs a token for userID carrying role. The expiry is always TokenTTL after issuance.
func (tc *TokenCodec) Issue(userID string, role domain.Role) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, ErrEmptySubject
	}
	issuedAt := tc.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(TokenTTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry. Every failure wraps ErrInvalidToken; callers treat it as no token.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := tc.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrInvalidToken)
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
