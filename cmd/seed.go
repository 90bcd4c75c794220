package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"blogly/models"
	"blogly/repositories"
	"blogly/services"
)

type seedPost struct {
	title   string
	content string
	tags    []string
}

type seedUser struct {
	first, last string
	posts       []seedPost
}

var seedTags = []string{"go", "databases", "fun"}

var seedUsers = []seedUser{
	{first: "Alan", last: "Alda", posts: []seedPost{
		{title: "First Post", content: "Hello from **Alan**.", tags: []string{"fun"}},
	}},
	{first: "Joel", last: "Burton", posts: []seedPost{
		{title: "Flask to Go", content: "Routing tables, forms and redirects.", tags: []string{"go", "databases"}},
		{title: "Many to many", content: "Posts and tags share one join table.", tags: []string{"databases"}},
	}},
	{first: "Jane", last: "Smith"},
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users, posts and tags into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db)

			created, err := Seed(db)
			if err != nil {
				return err
			}
			if !created {
				logger.Info("Database already has users, nothing seeded")
				return nil
			}
			logger.Info("Database seeded", "users", len(seedUsers), "tags", len(seedTags))
			return nil
		},
	}
}

// Seed fills an empty database with sample rows. It reports false when
// users already exist.
func Seed(db *gorm.DB) (bool, error) {
	userService := services.NewUserService(db, repositories.NewUserRepository(db))
	postService := services.NewPostService(db, repositories.NewPostRepository(db))
	tagService := services.NewTagService(db, repositories.NewTagRepository(db))

	existing, err := userService.GetUsers()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	tagIDs := make(map[string]uint, len(seedTags))
	for _, name := range seedTags {
		tag, err := tagService.CreateTag(models.TagForm{Name: name})
		if err != nil {
			return false, fmt.Errorf("seed tag %q: %w", name, err)
		}
		tagIDs[name] = tag.ID
	}

	for _, su := range seedUsers {
		user, err := userService.CreateUser(models.UserForm{FirstName: su.first, LastName: su.last})
		if err != nil {
			return false, fmt.Errorf("seed user %s %s: %w", su.first, su.last, err)
		}
		for _, sp := range su.posts {
			form := models.PostForm{Title: sp.title, Content: sp.content}
			for _, name := range sp.tags {
				form.TagIDs = append(form.TagIDs, tagIDs[name])
			}
			if _, err := postService.CreatePost(user.ID, form); err != nil {
				return false, fmt.Errorf("seed post %q: %w", sp.title, err)
			}
		}
	}
	return true, nil
}
