package models

import "time"

type Comment struct {
	ID        uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"index;not null"`
	Author    User
	PostID    uint   `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}
