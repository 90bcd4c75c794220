package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogly/helper"
	"blogly/models"
	"blogly/services"
)

type TagHandler struct {
	tagService  services.TagService
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, postService services.PostService, h *helper.HTTPHelper) *TagHandler {
	return &TagHandler{
		tagService:  tagService,
		postService: postService,
		Helper:      h,
	}
}

// GET /tags
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, http.StatusOK, "tags/list", gin.H{
		"Title": "Tags",
		"Tags":  tags,
	})
}

// GET /tags/:id
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, http.StatusOK, "tags/show", gin.H{
		"Title": tag.Name,
		"Tag":   tag,
	})
}

// GET /tags/new
func (h *TagHandler) NewTagForm(c *gin.Context) {
	h.renderNew(c, http.StatusOK, models.TagForm{}, nil)
}

// POST /tags/new
func (h *TagHandler) CreateTag(c *gin.Context) {
	var form models.TagForm
	if err := h.Helper.BindForm(c, &form); err != nil {
		h.renderNew(c, h.Helper.GetStatusCode(err), form, h.Helper.FormErrors(err))
		return
	}

	tag, err := h.tagService.CreateTag(form)
	if err != nil {
		if errs := h.Helper.FormErrors(err); errs != nil {
			h.renderNew(c, h.Helper.GetStatusCode(err), form, errs)
			return
		}
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, "/tags", fmt.Sprintf("Tag '%s' added.", tag.Name))
}

// GET /tags/:id/edit
func (h *TagHandler) EditTagForm(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	form := models.TagForm{Name: tag.Name}
	for _, post := range tag.Posts {
		form.PostIDs = append(form.PostIDs, post.ID)
	}
	h.renderEdit(c, http.StatusOK, tag, form, nil)
}

// POST /tags/:id/edit
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var form models.TagForm
	bindErr := h.Helper.BindForm(c, &form)

	var tag *models.Tag
	err := bindErr
	if err == nil {
		tag, err = h.tagService.UpdateTag(id, form)
	}
	if err != nil {
		errs := h.Helper.FormErrors(err)
		if errs == nil {
			h.Helper.SendError(c, err)
			return
		}
		current, getErr := h.tagService.GetTag(id)
		if getErr != nil {
			h.Helper.SendError(c, getErr)
			return
		}
		h.renderEdit(c, h.Helper.GetStatusCode(err), current, form, errs)
		return
	}

	h.Helper.Redirect(c, "/tags", fmt.Sprintf("Tag '%s' edited.", tag.Name))
}

// POST /tags/:id/delete
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.DeleteTag(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, "/tags", fmt.Sprintf("Tag '%s' deleted.", tag.Name))
}

func (h *TagHandler) renderNew(c *gin.Context, status int, form models.TagForm, errs map[string]string) {
	posts, err := h.postService.GetPosts()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, status, "tags/new", gin.H{
		"Title":    "New Tag",
		"Posts":    posts,
		"Form":     form,
		"Selected": form.SelectedPosts(),
		"Errors":   errs,
	})
}

func (h *TagHandler) renderEdit(c *gin.Context, status int, tag *models.Tag, form models.TagForm, errs map[string]string) {
	posts, err := h.postService.GetPosts()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, status, "tags/edit", gin.H{
		"Title":    "Edit " + tag.Name,
		"Tag":      tag,
		"Posts":    posts,
		"Form":     form,
		"Selected": form.SelectedPosts(),
		"Errors":   errs,
	})
}
