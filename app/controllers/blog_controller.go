package controllers

import (
	"net/http"

	"inkwell/app/models"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/view"
	"inkwell/global"
)

type BlogController struct {
	Posts    *services.PostService
	Render   *view.Renderer
	Sessions *session.Manager
}

func NewBlogController(posts *services.PostService, rd *view.Renderer, sessions *session.Manager) *BlogController {
	return &BlogController{Posts: posts, Render: rd, Sessions: sessions}
}

func (c *BlogController) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Posts.List()
	if err != nil {
		global.Logger.Error().Err(err).Msg("list posts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := struct {
		Page
		Posts []models.Post
	}{newPage(w, r, c.Sessions), posts}
	c.Render.Render(w, http.StatusOK, "index.html", data)
}

func (c *BlogController) About(w http.ResponseWriter, r *http.Request) {
	c.Render.Render(w, http.StatusOK, "about.html", struct{ Page }{newPage(w, r, c.Sessions)})
}
