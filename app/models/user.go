package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:user"`
	Posts        []Post    `gorm:"foreignKey:AuthorID"`
	Comments     []Comment `gorm:"foreignKey:AuthorID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin is safe to call on a nil receiver, which stands in for the
// anonymous visitor in templates and middleware.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) IsAuthenticated() bool { return u != nil && u.ID != 0 }
