package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// CookieName is the session cookie carrying the signed author identity.
const CookieName = "inkpress_user"

// ErrNoSession indicates the request carries no usable session: the cookie
// is absent, expired, malformed, or its signature does not verify. Callers
// treat all of these as the anonymous state.
var ErrNoSession = errors.New("no valid session")

// Sessions signs and verifies the author-identity cookie.
//
// The cookie value is a compact HS256 JWT whose subject is the author id.
// Any tampering with the payload invalidates the signature, so a verified
// token is as trustworthy as the server-held secret.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session manager. secure controls the cookie's
// Secure attribute and should be true in production.
func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Login sets the signed session cookie for the given author id.
func (s *Sessions) Login(w http.ResponseWriter, authorID int64) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(authorID, 10),
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(s.ttl),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout clears the session cookie.
func (s *Sessions) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// AuthorID extracts and verifies the author id carried by the request's
// session cookie. Returns ErrNoSession for anything short of a validly
// signed, unexpired token with a numeric subject.
func (s *Sessions) AuthorID(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, ErrNoSession
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil || !token.Valid {
		return 0, ErrNoSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrNoSession
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNoSession
	}
	return id, nil
}
