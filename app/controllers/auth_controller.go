package controllers

import (
	"errors"
	"net/http"

	"inkwell/app/forms"
	"inkwell/app/repo"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/view"
	"inkwell/global"
)

type AuthController struct {
	Users    *services.UserService
	Render   *view.Renderer
	Sessions *session.Manager
}

func NewAuthController(users *services.UserService, rd *view.Renderer, sessions *session.Manager) *AuthController {
	return &AuthController{Users: users, Render: rd, Sessions: sessions}
}

type registerPage struct {
	Page
	Form *forms.RegisterForm
}

func (c *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.Render.Render(w, http.StatusOK, "register.html", registerPage{newPage(w, r, c.Sessions), &forms.RegisterForm{}})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.ParseRegister(r)
	if !form.Validate() {
		c.Render.Render(w, http.StatusOK, "register.html", registerPage{newPage(w, r, c.Sessions), form})
		return
	}
	u, err := c.Users.Register(form.Email, form.Password, form.Name)
	if errors.Is(err, repo.ErrDuplicate) {
		session.Flash(w, "You already signed up with that email, log in instead!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Msg("register user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := c.Sessions.Login(w, u); err != nil {
		global.Logger.Error().Err(err).Msg("start session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type loginPage struct {
	Page
	Form *forms.LoginForm
}

func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.Render.Render(w, http.StatusOK, "login.html", loginPage{newPage(w, r, c.Sessions), &forms.LoginForm{}})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.ParseLogin(r)
	if !form.Validate() {
		c.Render.Render(w, http.StatusOK, "login.html", loginPage{newPage(w, r, c.Sessions), form})
		return
	}
	u, err := c.Users.Authenticate(form.Email, form.Password)
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		session.Flash(w, "This email does not exist, please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrWrongPassword):
		session.Flash(w, "Incorrect password, please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case err != nil:
		global.Logger.Error().Err(err).Msg("authenticate")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := c.Sessions.Login(w, u); err != nil {
		global.Logger.Error().Err(err).Msg("start session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.Sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
