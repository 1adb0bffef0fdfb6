package auth

import (
	"context"
	"net/http"

	"github.com/sakif/gocamp/internal/flash"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// contextKey is an unexported type for context keys in this package. Using a
// package-private type means no other package can read or shadow the value.
type contextKey string

const currentUserKey contextKey = "currentUser"

// ReturnToCookieName is the cookie recording the URL a logged-out user was
// trying to reach, so login can send them back there.
const ReturnToCookieName = "return_to"

// returnToMaxAge keeps the return-to cookie short-lived — long enough to log
// in, short enough not to redirect somewhere surprising days later.
const returnToMaxAge = 600 // seconds

// CurrentUser is a global middleware that binds the session's user to the
// request context.
//
// It never blocks a request: an absent, expired, or tampered session cookie
// simply means the request proceeds anonymously. Loading the full user record
// here (rather than trusting the token's subject blindly) means a session for
// a since-deleted account degrades to anonymous instead of producing ghost
// authors downstream.
func CurrentUser(sessions *SessionService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.Validate(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin gates a route on an authenticated session.
//
// Anonymous requests get the original URL recorded in the return-to cookie, a
// flashed explanation, and a redirect to the login page. Authorization
// failures are always handled this way — flash and redirect, never a rendered
// error page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			SetReturnTo(w, r.URL.RequestURI())
			flash.Error(w, "You must be logged in to view this page")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext retrieves the authenticated user bound by CurrentUser.
// Returns (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok && user != nil
}

// SetReturnTo records the path to come back to after a successful login.
func SetReturnTo(w http.ResponseWriter, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ReturnToCookieName,
		Value:    path,
		Path:     "/",
		MaxAge:   returnToMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopReturnTo returns the recorded path (or "" if none) and clears the
// cookie — it is single-use.
func PopReturnTo(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(ReturnToCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ReturnToCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Only ever redirect within the site. An absolute URL or
	// protocol-relative path in the cookie is discarded.
	if len(cookie.Value) == 0 || cookie.Value[0] != '/' ||
		(len(cookie.Value) > 1 && cookie.Value[1] == '/') {
		return ""
	}

	return cookie.Value
}
