package models

import (
	"time"
)

type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Posts     []Post    `json:"posts,omitempty" gorm:"many2many:posts_tags;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

