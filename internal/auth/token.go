// Package auth issues and validates the signed, expiring credentials handed
// out at login, and hashes passwords at rest.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 30 * time.Minute

// Status is the outcome of validating a token.
type Status int

const (
	Valid Status = iota
	Expired
	BadSignature
	Malformed
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case BadSignature:
		return "bad_signature"
	default:
		return "malformed"
	}
}

// Result carries the validation status and, when Valid, the principal's public id.
type Result struct {
	Status   Status
	PublicID string
}

// OK reports whether the token was valid.
func (r Result) OK() bool { return r.Status == Valid }

// Issuer signs and validates HS256 tokens with a server-held secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL returns the token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed token for publicID that expires after the issuer's TTL.
func (i *Issuer) Issue(publicID string) (string, error) {
	if publicID == "" {
		return "", errors.New("auth: empty public id")
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   publicID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry(now, i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// expiry returns now+ttl rounded up to a whole second. NumericDate drops the
// fraction, so rounding down would cut the token short of its full ttl.
func expiry(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		exp = t.Add(time.Second)
	}
	return exp
}

// Validate checks the signature and expiry of tokenStr. It never returns an
// error; every failure is reported through Result.Status.
func (i *Issuer) Validate(tokenStr string) Result {
	if tokenStr == "" {
		return Result{Status: Malformed}
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	switch {
	case err == nil && token.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Result{Status: Expired}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Result{Status: BadSignature}
	default:
		return Result{Status: Malformed}
	}

	if claims.Subject == "" {
		return Result{Status: Malformed}
	}
	return Result{Status: Valid, PublicID: claims.Subject}
}
