package repo

import (
	"inkwell/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(p *models.Post) error { return translate(r.db.Create(p).Error) }

func (r *PostRepository) ListAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Order("id").Find(&posts).Error
	return posts, translate(err)
}

// FindByID loads a post with its author and its comments, each comment
// carrying its own author for display.
func (r *PostRepository) FindByID(id uint) (*models.Post, error) {
	var p models.Post
	err := r.db.Preload("Author").Preload("Comments").Preload("Comments.Author").First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PostRepository) Update(p *models.Post) error {
	return translate(r.db.Omit(clause.Associations).Save(p).Error)
}

// Delete removes the post and its comments in one transaction. SQLite
// does not enforce the cascade constraint by default, so the comments
// are cleared explicitly.
func (r *PostRepository) Delete(id uint) error {
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
	}))
}
