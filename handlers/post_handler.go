package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogly/helper"
	"blogly/models"
	"blogly/services"
)

type PostHandler struct {
	postService services.PostService
	userService services.UserService
	tagService  services.TagService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, userService services.UserService, tagService services.TagService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		tagService:  tagService,
		Helper:      h,
	}
}

// GET /users/:id/posts/new
func (h *PostHandler) NewPostForm(c *gin.Context) {
	userID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.renderNew(c, http.StatusOK, user, models.PostForm{}, nil)
}

// POST /users/:id/posts/new
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var form models.PostForm
	if err := h.Helper.BindForm(c, &form); err != nil {
		user, getErr := h.userService.GetUser(userID)
		if getErr != nil {
			h.Helper.SendError(c, getErr)
			return
		}
		h.renderNew(c, h.Helper.GetStatusCode(err), user, form, h.Helper.FormErrors(err))
		return
	}

	post, err := h.postService.CreatePost(userID, form)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, fmt.Sprintf("/users/%d", userID), fmt.Sprintf("Post '%s' added.", post.Title))
}

// GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, http.StatusOK, "posts/show", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}

// GET /posts/:id/edit
func (h *PostHandler) EditPostForm(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	form := models.PostForm{Title: post.Title, Content: post.Content}
	for _, tag := range post.Tags {
		form.TagIDs = append(form.TagIDs, tag.ID)
	}
	h.renderEdit(c, http.StatusOK, post, form, nil)
}

// POST /posts/:id/edit
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var form models.PostForm
	if err := h.Helper.BindForm(c, &form); err != nil {
		post, getErr := h.postService.GetPost(id)
		if getErr != nil {
			h.Helper.SendError(c, getErr)
			return
		}
		h.renderEdit(c, h.Helper.GetStatusCode(err), post, form, h.Helper.FormErrors(err))
		return
	}

	post, err := h.postService.UpdatePost(id, form)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, fmt.Sprintf("/users/%d", post.UserID), fmt.Sprintf("Post '%s' edited.", post.Title))
}

// POST /posts/:id/delete
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.DeletePost(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, fmt.Sprintf("/users/%d", post.UserID), fmt.Sprintf("Post '%s' deleted.", post.Title))
}

func (h *PostHandler) renderNew(c *gin.Context, status int, user *models.User, form models.PostForm, errs map[string]string) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, status, "posts/new", gin.H{
		"Title":    "New Post",
		"User":     user,
		"Tags":     tags,
		"Form":     form,
		"Selected": form.SelectedTags(),
		"Errors":   errs,
	})
}

func (h *PostHandler) renderEdit(c *gin.Context, status int, post *models.Post, form models.PostForm, errs map[string]string) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, status, "posts/edit", gin.H{
		"Title":    "Edit " + post.Title,
		"Post":     post,
		"Tags":     tags,
		"Form":     form,
		"Selected": form.SelectedTags(),
		"Errors":   errs,
	})
}
