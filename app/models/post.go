package models

import "time"

type Post struct {
	ID       uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"index;not null"`
	Author   User
	Title    string `gorm:"uniqueIndex;size:191;not null"`
	Subtitle string `gorm:"size:255;not null"`
	// Date is the human-readable publication stamp shown on the page,
	// e.g. "August 29, 2026". Not used for ordering.
	Date      string `gorm:"size:64;not null"`
	Body      string `gorm:"type:text;not null"`
	ImgURL    string `gorm:"size:255;not null"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
