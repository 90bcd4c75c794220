package models

import (
	"time"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Tags      []Tag     `json:"tags" gorm:"many2many:posts_tags;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FriendlyDate formats CreatedAt the way the pages display it,
// e.g. "Mon Jan 2 2006, 3:04 PM".
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format("Mon Jan 2 2006, 3:04 PM")
}
