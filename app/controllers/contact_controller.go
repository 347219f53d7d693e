package controllers

import (
	"context"
	"net/http"
	"time"

	"inkwell/app/forms"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/view"
	"inkwell/global"
)

type ContactController struct {
	Mail     services.Mailer
	Timeout  time.Duration
	Render   *view.Renderer
	Sessions *session.Manager
}

func NewContactController(mail services.Mailer, timeout time.Duration, rd *view.Renderer, sessions *session.Manager) *ContactController {
	return &ContactController{Mail: mail, Timeout: timeout, Render: rd, Sessions: sessions}
}

type contactPage struct {
	Page
	Form *forms.ContactForm
	Msg  string
}

func (c *ContactController) Show(w http.ResponseWriter, r *http.Request) {
	c.Render.Render(w, http.StatusOK, "contact.html", contactPage{newPage(w, r, c.Sessions), &forms.ContactForm{}, ""})
}

func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.ParseContact(r)
	if !form.Validate() {
		c.Render.Render(w, http.StatusOK, "contact.html", contactPage{newPage(w, r, c.Sessions), form, ""})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()
	msg := services.ContactMessage{Name: form.Name, Email: form.Email, Number: form.Number, Message: form.Message}
	if err := c.Mail.SendContact(ctx, msg); err != nil {
		global.Logger.Error().Err(err).Msg("send contact mail")
		c.Render.Render(w, http.StatusOK, "contact.html",
			contactPage{newPage(w, r, c.Sessions), form, "Your message could not be sent, please try again later."})
		return
	}
	c.Render.Render(w, http.StatusOK, "contact.html",
		contactPage{newPage(w, r, c.Sessions), &forms.ContactForm{}, "Successfully sent your message"})
}
