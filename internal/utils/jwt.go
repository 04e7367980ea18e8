// Package utils provides helpers for password hashing and session tokens.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned for tokens that fail signature,
// expiry or claim checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken is a signed HS256 JWT carried in the session cookie along with
// its expiry.  The token only identifies the session; whether the session is
// still live is decided by the server-side store.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims are the values recovered from a valid session token.
type SessionClaims struct {
	AccountID uint64 // sub
	SessionID string // jti
	Expires   time.Time
}

// NewSessionToken builds and signs a session JWT for an account.  The subject
// is the account id and the JWT id is the server-side session id.
func NewSessionToken(secret string, accountID uint64, sessionID string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(accountID, 10),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature (HMAC only) and expiry of raw and
// returns its claims.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	out := SessionClaims{AccountID: id, SessionID: claims.ID}
	if claims.ExpiresAt != nil {
		out.Expires = claims.ExpiresAt.Time
	}
	return out, nil
}
