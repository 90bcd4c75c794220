package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogly/models"
)

type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	Update(tag *models.Tag) error
	ReplacePosts(tag *models.Tag, posts []models.Post) error
	Delete(tag *models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Omit("Posts.*").Create(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("posts.title asc")
	}).First(&tag, id).Error
	return &tag, err
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Save(tag).Error
}

// ReplacePosts makes posts the tag's complete post set. An empty slice
// removes every association.
func (r *tagRepository) ReplacePosts(tag *models.Tag, posts []models.Post) error {
	assoc := r.db.Model(tag).Omit("Posts.*").Association("Posts")
	if len(posts) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		tag.Posts = nil
		return nil
	}
	return assoc.Replace(posts)
}

// Delete removes the tag's posts_tags rows and then the tag. Posts are kept.
func (r *tagRepository) Delete(tag *models.Tag) error {
	if err := r.db.Model(tag).Association("Posts").Clear(); err != nil {
		return err
	}
	return r.db.Delete(tag).Error
}
