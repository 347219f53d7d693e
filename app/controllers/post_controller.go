package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"inkwell/app/forms"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repo"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/view"
	"inkwell/global"
)

type PostController struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Render   *view.Renderer
	Sessions *session.Manager
}

func NewPostController(posts *services.PostService, comments *services.CommentService, rd *view.Renderer, sessions *session.Manager) *PostController {
	return &PostController{Posts: posts, Comments: comments, Render: rd, Sessions: sessions}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type postPage struct {
	Page
	Post *models.Post
	Form *forms.CommentForm
}

func (c *PostController) Show(w http.ResponseWriter, r *http.Request) {
	c.show(w, r, &forms.CommentForm{})
}

func (c *PostController) show(w http.ResponseWriter, r *http.Request, form *forms.CommentForm) {
	page := newPage(w, r, c.Sessions)
	id, ok := pathID(r)
	if !ok {
		renderNotFound(c.Render, w, page)
		return
	}
	post, err := c.Posts.Get(id)
	if errors.Is(err, repo.ErrNotFound) {
		renderNotFound(c.Render, w, page)
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("post", id).Msg("load post")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	c.Render.Render(w, http.StatusOK, "post.html", postPage{page, post, form})
}

// AddComment handles the comment form on the post page. The handler
// checks authentication itself rather than sitting behind RequireLogin
// so an anonymous attempt gets the flash the original page promises.
func (c *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if !user.IsAuthenticated() {
		session.Flash(w, "You need to login or register to add comments.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, ok := pathID(r)
	if !ok {
		renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
		return
	}
	form := forms.ParseComment(r)
	if !form.Validate() {
		c.show(w, r, form)
		return
	}
	if _, err := c.Comments.Add(user.ID, id, form.Body); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
			return
		}
		global.Logger.Error().Err(err).Uint("post", id).Msg("add comment")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

type postFormPage struct {
	Page
	Form    *forms.PostForm
	Editing bool
	PostID  uint
}

func (c *PostController) NewForm(w http.ResponseWriter, r *http.Request) {
	c.Render.Render(w, http.StatusOK, "make-post.html", postFormPage{newPage(w, r, c.Sessions), &forms.PostForm{}, false, 0})
}

func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.ParsePost(r)
	if !form.Validate() {
		c.Render.Render(w, http.StatusOK, "make-post.html", postFormPage{newPage(w, r, c.Sessions), form, false, 0})
		return
	}
	user := middleware.CurrentUser(r.Context())
	_, err := c.Posts.Create(user.ID, form.Title, form.Subtitle, form.Body, form.ImgURL)
	if errors.Is(err, repo.ErrDuplicate) {
		session.Flash(w, "You already wrote a blog post with that title!")
		http.Redirect(w, r, "/new-post", http.StatusSeeOther)
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Msg("create post")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	page := newPage(w, r, c.Sessions)
	id, ok := pathID(r)
	if !ok {
		renderNotFound(c.Render, w, page)
		return
	}
	post, err := c.Posts.Get(id)
	if errors.Is(err, repo.ErrNotFound) {
		renderNotFound(c.Render, w, page)
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("post", id).Msg("load post")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	form := &forms.PostForm{Title: post.Title, Subtitle: post.Subtitle, ImgURL: post.ImgURL, Body: post.Body}
	c.Render.Render(w, http.StatusOK, "make-post.html", postFormPage{page, form, true, post.ID})
}

func (c *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, ok := pathID(r)
	if !ok {
		renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
		return
	}
	form := forms.ParsePost(r)
	if !form.Validate() {
		c.Render.Render(w, http.StatusOK, "make-post.html", postFormPage{newPage(w, r, c.Sessions), form, true, id})
		return
	}
	err := c.Posts.Update(id, form.Title, form.Subtitle, form.Body, form.ImgURL)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
		return
	case errors.Is(err, repo.ErrDuplicate):
		session.Flash(w, "You already wrote a blog post with that title!")
		http.Redirect(w, r, fmt.Sprintf("/edit-post/%d", id), http.StatusSeeOther)
		return
	case err != nil:
		global.Logger.Error().Err(err).Uint("post", id).Msg("edit post")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if !c.Sessions.VerifyCSRF(r) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, ok := pathID(r)
	if !ok {
		renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
		return
	}
	err := c.Posts.Delete(id)
	if errors.Is(err, repo.ErrNotFound) {
		renderNotFound(c.Render, w, newPage(w, r, c.Sessions))
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("post", id).Msg("delete post")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
