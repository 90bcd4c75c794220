package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogly/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByIDWithPosts(id uint) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByIDWithPosts(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("posts.created_at desc").Order("posts.id desc")
	}).First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("first_name asc").Order("last_name asc").Order("id asc").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}
