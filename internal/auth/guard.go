package auth

import (
	"net/http"

	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// RequireSession is the route guard for protected pages.
//
// It checks the pure predicate session.CanAccess against the current
// session snapshot and redirects anonymous requests to the login page.
// The guard does NOT verify the token with the backend — a stale token
// passes here and fails on the first API call, which is the contract the
// whole app follows.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler wrapping it. Chi applies them in a chain:
// req → M1 → M2 → Handler.
func RequireSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.CanAccess(store.Current()) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
