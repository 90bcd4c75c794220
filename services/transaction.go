package services

import (
	"errors"

	"gorm.io/gorm"

	"blogly/models"
	"blogly/repositories"
)

// txRepos holds repositories bound to a single transaction.
type txRepos struct {
	users repositories.UserRepository
	posts repositories.PostRepository
	tags  repositories.TagRepository
}

type txFunc func(r txRepos) error

// withTransaction runs fn in one transaction and commits when it returns nil.
func withTransaction(db *gorm.DB, fn txFunc) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(txRepos{
			users: repositories.NewUserRepository(tx),
			posts: repositories.NewPostRepository(tx),
			tags:  repositories.NewTagRepository(tx),
		})
	})
}

// notFound converts gorm.ErrRecordNotFound into models.ErrorNotFound.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrorNotFound{Entity: entity, ID: id}
	}
	return err
}
