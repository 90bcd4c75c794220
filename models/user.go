package models

import (
	"time"
)

// DefaultImageURL is shown for users without a profile image.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	ImageURL  *string   `json:"image_url"`
	Posts     []Post    `json:"posts,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Avatar returns the stored image URL or DefaultImageURL when none is set.
func (u User) Avatar() string {
	if u.ImageURL == nil || *u.ImageURL == "" {
		return DefaultImageURL
	}
	return *u.ImageURL
}
