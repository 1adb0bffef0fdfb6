// Package flash implements one-shot user-facing notices.
//
// A flash message is enqueued during one request (usually right before a
// redirect) and rendered exactly once, on the next page the user sees. The
// queue lives in a cookie, so there is no server-side state: the handler
// writing the redirect sets the cookie, and the next render pops it — reads
// the messages and tells the browser to delete the cookie in the same
// response. After that cycle the messages are gone.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName is the cookie carrying pending flash messages.
const CookieName = "flash"

// Messages holds the pending notices by kind. Templates render Success
// messages in a green banner and Error messages in a red one.
type Messages struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

// Empty reports whether there is nothing to render.
func (m Messages) Empty() bool {
	return len(m.Success) == 0 && len(m.Error) == 0
}

// Success enqueues a success notice for the next rendered page.
func Success(w http.ResponseWriter, message string) {
	set(w, Messages{Success: []string{message}})
}

// Error enqueues an error notice for the next rendered page.
func Error(w http.ResponseWriter, message string) {
	set(w, Messages{Error: []string{message}})
}

// Pop returns any pending messages and clears the cookie, so the messages
// render on this response and never again.
func Pop(w http.ResponseWriter, r *http.Request) Messages {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Messages{}
	}

	// Clear regardless of whether the payload decodes — a corrupt cookie
	// should not stick around and fail on every page load.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Messages{}
	}

	var m Messages
	if err := json.Unmarshal(raw, &m); err != nil {
		return Messages{}
	}
	return m
}

// set encodes the messages as base64url JSON. Cookie values can't hold raw
// JSON (commas and quotes are out), hence the encoding step.
func set(w http.ResponseWriter, m Messages) {
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
