package services

import (
	"time"

	"inkwell/app/models"
	"inkwell/app/repo"
)

const dateLayout = "January 02, 2006"

type PostService struct{ posts *repo.PostRepository }

func NewPostService(posts *repo.PostRepository) *PostService { return &PostService{posts: posts} }

func (s *PostService) List() ([]models.Post, error) { return s.posts.ListAll() }

func (s *PostService) Get(id uint) (*models.Post, error) { return s.posts.FindByID(id) }

// Create stamps the post with the long-form publication date and
// persists it. A duplicate title surfaces as repo.ErrDuplicate.
func (s *PostService) Create(authorID uint, title, subtitle, body, imgURL string) (*models.Post, error) {
	p := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(dateLayout),
		Body:     body,
		ImgURL:   imgURL,
	}
	if err := s.posts.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update mutates the editable fields of an existing post. A title
// collision fails the update and leaves the stored row unchanged.
func (s *PostService) Update(id uint, title, subtitle, body, imgURL string) error {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return err
	}
	p.Title = title
	p.Subtitle = subtitle
	p.Body = body
	p.ImgURL = imgURL
	return s.posts.Update(p)
}

func (s *PostService) Delete(id uint) error { return s.posts.Delete(id) }
