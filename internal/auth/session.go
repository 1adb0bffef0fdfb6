package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionDuration is the absolute lifetime of a login session. Both the
// token's ExpiresAt claim and the cookie's MaxAge use this value, so the
// browser drops the cookie at the same moment the token stops validating.
const SessionDuration = 7 * 24 * time.Hour

const issuer = "gocamp"

// SessionService issues and validates the signed session tokens that stand in
// for server-side session state.
//
// WHY A SIGNED TOKEN INSTEAD OF A SESSION TABLE?
// The only thing the session needs to carry is the user's ID. An HMAC-signed
// token holds that ID tamper-proof inside the cookie itself, so every request
// is authenticated without a session lookup, and "logout" is simply deleting
// the cookie.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given HMAC secret.
// The secret should be at least 32 bytes of random data in production.
func NewSessionService(secret string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &SessionService{secret: []byte(secret)}, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given userID, valid for
// SessionDuration.
func (s *SessionService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, SessionDuration)
}

// IssueWithDuration creates a token with a custom lifetime. Used by tests to
// mint already-expired tokens.
func (s *SessionService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token, returning the userID it was
// issued for. Restricting the accepted algorithms to HS256 blocks algorithm
// confusion attacks ("alg":"none" and friends).
func (s *SessionService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return c.Subject, nil
}

// SetSessionCookie writes the session cookie for a freshly issued token.
// HttpOnly keeps JavaScript away from it; SameSite=Lax keeps it off
// cross-site POSTs.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the browser to delete the session cookie
// immediately. This is the whole of logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
