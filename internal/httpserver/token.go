package httpserver

import (
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	defaultCookieName = "devfolio_game"
	tokenInfo         = "devfolio game session v1"

	// refreshHeader carries a re-signed token to clients that use the bearer header.
	refreshHeader = "X-Session-Token"
)

var errNoToken = errors.New("no session token")

// Tokens signs and verifies HS256 game-session tokens. The subject claim is
// the session id. A token lives for ttl; requests made in the second half
// of that window get a fresh one, so only idle sessions lose their token.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokens derives the signing key from secret with HKDF-SHA256.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(tokenInfo)), key); err != nil {
		return nil, err
	}
	return &Tokens{key: key, ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for the session id.
func (t *Tokens) Sign(id string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.key)
	return ss, exp, err
}

// Parse verifies tok and returns the session id and the token's expiry.
func (t *Tokens) Parse(tok string) (string, time.Time, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", time.Time{}, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", time.Time{}, errors.New("invalid token")
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// Stale reports whether a token expiring at exp should be re-signed.
func (t *Tokens) Stale(exp time.Time) bool {
	return exp.Sub(t.now()) < t.ttl/2
}

// setSessionCookie writes the session token cookie with appropriate security attributes.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("APP_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     getEnv("COOKIE_NAME", defaultCookieName),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session token cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     getEnv("COOKIE_NAME", defaultCookieName),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// sessionToken extracts a token from the Authorization header, the session
// cookie, or the token query parameter (browsers cannot set headers on
// WebSocket upgrades).
func sessionToken(r *http.Request) (string, error) {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:]), nil
	}
	if c, err := r.Cookie(getEnv("COOKIE_NAME", defaultCookieName)); err == nil && c.Value != "" {
		return c.Value, nil
	}
	if q := r.URL.Query().Get("token"); q != "" {
		return q, nil
	}
	return "", errNoToken
}
