// Package testutils opens throwaway databases and inserts fixtures for tests.
package testutils

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogly/config"
	"blogly/models"
)

// TestDatabaseConfig points at a private in-memory SQLite database. One
// open connection keeps every query on the same memory database.
func TestDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		LogLevel:     "silent",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// SetupTestDB returns a migrated database that is closed when t finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.InitDB(TestDatabaseConfig())
	require.NoError(t, err, "open test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateTestUser(t *testing.T, db *gorm.DB, first, last string) *models.User {
	t.Helper()

	user := &models.User{FirstName: first, LastName: last}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestPost inserts a post owned by user and linked to tags.
func CreateTestPost(t *testing.T, db *gorm.DB, user *models.User, title string, tags ...*models.Tag) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:   title,
		Content: "Content of " + title,
		UserID:  user.ID,
	}
	for _, tag := range tags {
		post.Tags = append(post.Tags, *tag)
	}
	require.NoError(t, db.Omit("User", "Tags.*").Create(post).Error)
	return post
}

// CountPostTags returns the number of posts_tags rows.
func CountPostTags(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Table("posts_tags").Count(&n).Error)
	return n
}
