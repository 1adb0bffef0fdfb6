package middleware

import "net/http"

// overrideField is the form field carrying the intended method. Edit and
// delete forms submit as POST with `_method=PUT` or `_method=DELETE`.
const overrideField = "_method"

// MethodOverride rewrites the request method from the _method form field.
//
// HTML forms can only send GET and POST, but the routes for updating and
// deleting are PUT and DELETE. This middleware runs before routing, checks
// POST requests for the override field, and swaps in the intended method so
// the router dispatches as if the browser had sent it directly.
//
// Only PUT, PATCH and DELETE are honoured — a form can't override its way
// into, say, CONNECT.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// ParseForm reads both the query string and the urlencoded body,
			// and is idempotent — the handler's own ParseForm call later is a
			// no-op.
			if err := r.ParseForm(); err == nil {
				switch method := r.PostForm.Get(overrideField); method {
				case http.MethodPut, http.MethodPatch, http.MethodDelete:
					r.Method = method
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
