package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogly/models"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetByIDs(ids []uint) ([]models.Post, error)
	GetByUserID(userID uint) ([]models.Post, error)
	GetAll() ([]models.Post, error)
	Update(post *models.Post) error
	ReplaceTags(post *models.Post, tags []models.Tag) error
	Delete(post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its posts_tags rows. The tags themselves must
// already exist.
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Omit("User", "Tags.*").Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name asc")
		}).
		First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetByIDs(ids []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.Where("id IN ?", ids).Order("title asc").Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("User").Order("title asc").Order("id asc").Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

// ReplaceTags makes tags the post's complete tag set. An empty slice
// removes every association.
func (r *postRepository) ReplaceTags(post *models.Post, tags []models.Tag) error {
	assoc := r.db.Model(post).Omit("Tags.*").Association("Tags")
	if len(tags) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		post.Tags = nil
		return nil
	}
	return assoc.Replace(tags)
}

// Delete removes the post's posts_tags rows and then the post.
func (r *postRepository) Delete(post *models.Post) error {
	if err := r.db.Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.Delete(post).Error
}
