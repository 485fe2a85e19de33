package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultResetTokenTTL is how long a password reset link stays valid.
const DefaultResetTokenTTL = 30 * time.Minute

// ResetTokenService issues and verifies the signed, time-limited tokens
// embedded in password reset links. It is a pure function pair over
// (secret, clock): passing the clock in keeps expiry behavior
// deterministic under test.
type ResetTokenService struct {
	secret []byte
	now    func() time.Time
}

func NewResetTokenService(secret string, now func() time.Time) *ResetTokenService {
	if now == nil {
		now = time.Now
	}
	return &ResetTokenService{secret: []byte(secret), now: now}
}

// Issue produces a token embedding the user id, valid for ttl.
func (s *ResetTokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "quill-reset",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the embedded user id only if the signature checks out
// and the token has not expired. Every failure mode collapses to
// ErrInvalidToken; callers must treat tampered and expired identically.
func (s *ResetTokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer("quill-reset"),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
