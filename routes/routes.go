package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogly/config"
	"blogly/handlers"
	"blogly/helper"
	"blogly/middleware"
	"blogly/repositories"
	"blogly/services"
	"blogly/views"
)

// Setup wires repositories, services and handlers over db and registers the
// routing table.
func Setup(db *gorm.DB, cfg *config.AppConfig, logger *slog.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(cfg.Server.Mode)

	notices, err := middleware.NewNoticeStore(cfg.SecretKey, cfg.Server.Mode == gin.ReleaseMode)
	if err != nil {
		return nil, err
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	httpHelper, err := helper.NewHTTPHelper(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init validator: %w", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	userService := services.NewUserService(db, userRepo)
	postService := services.NewPostService(db, postRepo)
	tagService := services.NewTagService(db, tagRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	postHandler := handlers.NewPostHandler(postService, userService, tagService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, postService, httpHelper)
	healthHandler := handlers.NewHealthHandler(db)

	origins := cfg.CORS.AllowOrigins
	if len(origins) == 0 {
		origins = []string{fmt.Sprintf("http://localhost:%d", cfg.Server.Port)}
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		notices.Middleware(),
	)

	// Health check
	router.GET("/health", healthHandler.Health)

	router.GET("/", userHandler.Home)

	// Users
	router.GET("/users-list", userHandler.GetUsers)
	users := router.Group("/users")
	{
		users.GET("", userHandler.GetUsers)
		users.GET("/new", userHandler.NewUserForm)
		users.POST("/new", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/edit", userHandler.EditUserForm)
		users.POST("/:id/edit", userHandler.UpdateUser)
		users.POST("/:id/delete", userHandler.DeleteUser)
		users.GET("/:id/posts/new", postHandler.NewPostForm)
		users.POST("/:id/posts/new", postHandler.CreatePost)
	}

	// Posts
	posts := router.Group("/posts")
	{
		posts.GET("/:id", postHandler.GetPost)
		posts.GET("/:id/edit", postHandler.EditPostForm)
		posts.POST("/:id/edit", postHandler.UpdatePost)
		posts.POST("/:id/delete", postHandler.DeletePost)
	}

	// Tags
	tags := router.Group("/tags")
	{
		tags.GET("", tagHandler.GetTags)
		tags.GET("/new", tagHandler.NewTagForm)
		tags.POST("/new", tagHandler.CreateTag)
		tags.GET("/:id", tagHandler.GetTag)
		tags.GET("/:id/edit", tagHandler.EditTagForm)
		tags.POST("/:id/edit", tagHandler.UpdateTag)
		tags.POST("/:id/delete", tagHandler.DeleteTag)
	}

	router.NoRoute(func(c *gin.Context) {
		httpHelper.SendNotFound(c, "Page not found")
	})

	return router, nil
}
