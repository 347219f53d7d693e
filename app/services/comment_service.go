package services

import (
	"inkwell/app/models"
	"inkwell/app/repo"
)

type CommentService struct {
	comments *repo.CommentRepository
	posts    *repo.PostRepository
}

func NewCommentService(comments *repo.CommentRepository, posts *repo.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Add appends a comment by authorID to the given post. The post is
// looked up first so a stale id yields repo.ErrNotFound instead of a
// dangling row.
func (s *CommentService) Add(authorID, postID uint, text string) (*models.Comment, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	}
	c := &models.Comment{AuthorID: authorID, PostID: postID, Text: text}
	if err := s.comments.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}
