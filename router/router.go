package router

import (
	"net/http"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
)

func New(blog *controllers.BlogController, auth *controllers.AuthController, posts *controllers.PostController, contact *controllers.ContactController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("GET /{$}", blog.Home)
	mux.HandleFunc("GET /about", blog.About)
	mux.HandleFunc("GET /register", auth.RegisterForm)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("GET /login", auth.LoginForm)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /contact", contact.Show)
	mux.HandleFunc("POST /contact", contact.Submit)
	mux.HandleFunc("GET /post/{id}", posts.Show)
	// comment auth is checked in the handler so an anonymous attempt
	// gets its flash message instead of the generic login redirect
	mux.HandleFunc("POST /post/{id}", posts.AddComment)

	// session required
	mux.Handle("GET /logout", mw.RequireLogin(http.HandlerFunc(auth.Logout)))

	// admin only
	mux.Handle("GET /new-post", mw.RequireAdmin(http.HandlerFunc(posts.NewForm)))
	mux.Handle("POST /new-post", mw.RequireAdmin(http.HandlerFunc(posts.Create)))
	mux.Handle("GET /edit-post/{id}", mw.RequireAdmin(http.HandlerFunc(posts.EditForm)))
	mux.Handle("POST /edit-post/{id}", mw.RequireAdmin(http.HandlerFunc(posts.Edit)))
	mux.Handle("POST /delete-post/{id}", mw.RequireAdmin(http.HandlerFunc(posts.Delete)))

	return mux
}
