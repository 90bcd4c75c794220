package services

import (
	"fmt"

	"gorm.io/gorm"

	"blogly/models"
	"blogly/repositories"
)

type UserService interface {
	GetUsers() ([]models.User, error)
	GetUser(id uint) (*models.User, error)
	CreateUser(form models.UserForm) (*models.User, error)
	UpdateUser(id uint, form models.UserForm) (*models.User, error)
	DeleteUser(id uint) (*models.User, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repositories.UserRepository) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
	}
}

func (s *userService) GetUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUser returns the user with their posts, newest first.
func (s *userService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (s *userService) CreateUser(form models.UserForm) (*models.User, error) {
	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURLPtr(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites all three fields from the form.
func (s *userService) UpdateUser(id uint, form models.UserForm) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}

	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.ImageURL = form.ImageURLPtr()

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes the user together with their posts and the posts'
// tag associations.
func (s *userService) DeleteUser(id uint) (*models.User, error) {
	var user *models.User
	err := withTransaction(s.db, func(r txRepos) error {
		var err error
		user, err = r.users.GetByID(id)
		if err != nil {
			return notFound(err, "user", id)
		}

		posts, err := r.posts.GetByUserID(id)
		if err != nil {
			return err
		}
		for i := range posts {
			if err := r.posts.Delete(&posts[i]); err != nil {
				return fmt.Errorf("delete post %d: %w", posts[i].ID, err)
			}
		}

		return r.users.Delete(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
