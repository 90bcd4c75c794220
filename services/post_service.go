package services

import (
	"fmt"

	"gorm.io/gorm"

	"blogly/models"
	"blogly/repositories"
)

type PostService interface {
	GetPosts() ([]models.Post, error)
	GetPost(id uint) (*models.Post, error)
	CreatePost(userID uint, form models.PostForm) (*models.Post, error)
	UpdatePost(id uint, form models.PostForm) (*models.Post, error)
	DeletePost(id uint) (*models.Post, error)
}

type postService struct {
	db       *gorm.DB
	postRepo repositories.PostRepository
}

func NewPostService(db *gorm.DB, postRepo repositories.PostRepository) PostService {
	return &postService{
		db:       db,
		postRepo: postRepo,
	}
}

func (s *postService) GetPosts() ([]models.Post, error) {
	return s.postRepo.GetAll()
}

// GetPost returns the post with its author and tags.
func (s *postService) GetPost(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	return post, nil
}

// CreatePost stores a post for userID linked to the existing tags among
// form.TagIDs. Unknown tag ids are ignored.
func (s *postService) CreatePost(userID uint, form models.PostForm) (*models.Post, error) {
	var post *models.Post
	err := withTransaction(s.db, func(r txRepos) error {
		user, err := r.users.GetByID(userID)
		if err != nil {
			return notFound(err, "user", userID)
		}

		tags, err := r.tags.GetByIDs(form.TagIDs)
		if err != nil {
			return err
		}

		post = &models.Post{
			Title:   form.Title,
			Content: form.Content,
			UserID:  user.ID,
			Tags:    tags,
		}
		if err := r.posts.Create(post); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		post.User = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost overwrites title and content and replaces the whole tag set.
func (s *postService) UpdatePost(id uint, form models.PostForm) (*models.Post, error) {
	var post *models.Post
	err := withTransaction(s.db, func(r txRepos) error {
		var err error
		post, err = r.posts.GetByID(id)
		if err != nil {
			return notFound(err, "post", id)
		}

		post.Title = form.Title
		post.Content = form.Content
		if err := r.posts.Update(post); err != nil {
			return fmt.Errorf("update post %d: %w", id, err)
		}

		tags, err := r.tags.GetByIDs(form.TagIDs)
		if err != nil {
			return err
		}
		return r.posts.ReplaceTags(post, tags)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(id uint) (*models.Post, error) {
	var post *models.Post
	err := withTransaction(s.db, func(r txRepos) error {
		var err error
		post, err = r.posts.GetByID(id)
		if err != nil {
			return notFound(err, "post", id)
		}
		return r.posts.Delete(post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}
