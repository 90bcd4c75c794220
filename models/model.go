package models

import "gorm.io/gorm"

// InitTable migrates users, posts, tags and the posts_tags join table.
func InitTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Tag{},
		&Post{},
	)
}
