package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/session"
	"inkwell/app/view"
)

// Page carries what every template needs: the current user (nil when
// anonymous), the pending flash message and the CSRF token for forms.
type Page struct {
	User  *models.User
	Flash string
	CSRF  string
}

func newPage(w http.ResponseWriter, r *http.Request, sessions *session.Manager) Page {
	token, _ := sessions.IssueCSRF(w, r)
	return Page{
		User:  middleware.CurrentUser(r.Context()),
		Flash: session.PopFlash(w, r),
		CSRF:  token,
	}
}

func renderNotFound(rd *view.Renderer, w http.ResponseWriter, page Page) {
	rd.Render(w, http.StatusNotFound, "404.html", struct{ Page }{page})
}
