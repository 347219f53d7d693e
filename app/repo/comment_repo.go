package repo

import (
	"inkwell/app/models"

	"gorm.io/gorm"
)

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) Create(c *models.Comment) error { return translate(r.db.Create(c).Error) }

func (r *CommentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").Where("post_id = ?", postID).Order("id").Find(&comments).Error
	return comments, translate(err)
}
