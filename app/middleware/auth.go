package middleware

import (
	"context"
	"net/http"

	"inkwell/app/models"
	"inkwell/app/services"
	"inkwell/app/session"
)

type ctxKey int

const userKey ctxKey = 1

type Auth struct {
	Sessions *session.Manager
	Users    *services.UserService
}

// WithUser resolves the session cookie to a stored user and attaches it
// to the request context. Anonymous requests pass through with no user.
func (a *Auth) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := a.Sessions.Current(r); claims != nil {
			// Role and name come from the row, not the cookie, so a
			// stale cookie cannot outlive a role change.
			if u, err := a.Users.FindByID(claims.UserID); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLogin redirects anonymous visitors to the login page.
func (a *Auth) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentUser(r.Context()).IsAuthenticated() {
			session.Flash(w, "Please log in to access this page.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects authenticated non-admins outright with 403.
// Anonymous visitors still get the login redirect; the hard reject is
// reserved for users who are logged in but not the admin.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentUser(r.Context()).IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// CurrentUser returns the authenticated user on the context, or nil for
// the anonymous visitor.
func CurrentUser(ctx context.Context) *models.User {
	if v := ctx.Value(userKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
