package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogly/models"
	"blogly/repositories"
)

type TagService interface {
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
	CreateTag(form models.TagForm) (*models.Tag, error)
	UpdateTag(id uint, form models.TagForm) (*models.Tag, error)
	DeleteTag(id uint) (*models.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	tagRepo repositories.TagRepository
}

func NewTagService(db *gorm.DB, tagRepo repositories.TagRepository) TagService {
	return &tagService{
		db:      db,
		tagRepo: tagRepo,
	}
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

// GetTag returns the tag with its posts ordered by title.
func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "tag", id)
	}
	return tag, nil
}

func (s *tagService) CreateTag(form models.TagForm) (*models.Tag, error) {
	var tag *models.Tag
	err := withTransaction(s.db, func(r txRepos) error {
		// Check if tag already exists
		if err := ensureTagNameFree(r.tags, form.Name, 0); err != nil {
			return err
		}

		posts, err := r.posts.GetByIDs(form.PostIDs)
		if err != nil {
			return err
		}

		tag = &models.Tag{
			Name:  form.Name,
			Posts: posts,
		}
		if err := r.tags.Create(tag); err != nil {
			return duplicateName(err, form.Name, "create tag")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag overwrites the name and replaces the whole post set.
func (s *tagService) UpdateTag(id uint, form models.TagForm) (*models.Tag, error) {
	var tag *models.Tag
	err := withTransaction(s.db, func(r txRepos) error {
		var err error
		tag, err = r.tags.GetByID(id)
		if err != nil {
			return notFound(err, "tag", id)
		}

		if err := ensureTagNameFree(r.tags, form.Name, tag.ID); err != nil {
			return err
		}

		tag.Name = form.Name
		if err := r.tags.Update(tag); err != nil {
			return duplicateName(err, form.Name, fmt.Sprintf("update tag %d", id))
		}

		posts, err := r.posts.GetByIDs(form.PostIDs)
		if err != nil {
			return err
		}
		return r.tags.ReplacePosts(tag, posts)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) DeleteTag(id uint) (*models.Tag, error) {
	var tag *models.Tag
	err := withTransaction(s.db, func(r txRepos) error {
		var err error
		tag, err = r.tags.GetByID(id)
		if err != nil {
			return notFound(err, "tag", id)
		}
		return r.tags.Delete(tag)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ensureTagNameFree fails with ErrorConflict when another tag (not selfID)
// already uses name.
func ensureTagNameFree(repo repositories.TagRepository, name string, selfID uint) error {
	existing, err := repo.GetByName(name)
	if err == nil && existing.ID != selfID {
		return models.ErrorConflict{Message: fmt.Sprintf("tag %q already exists", name)}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// duplicateName reports unique index violations that slipped past
// ensureTagNameFree as ErrorConflict.
func duplicateName(err error, name, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrorConflict{Message: fmt.Sprintf("tag %q already exists", name)}
	}
	return fmt.Errorf("%s: %w", op, err)
}
