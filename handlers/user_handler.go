package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogly/helper"
	"blogly/models"
	"blogly/services"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: h}
}

// Home redirects to the user list.
// GET /
func (h *UserHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/users-list")
}

// GET /users-list
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, http.StatusOK, "users/list", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

// GET /users/new
func (h *UserHandler) NewUserForm(c *gin.Context) {
	h.renderNew(c, http.StatusOK, models.UserForm{}, nil)
}

// POST /users/new
func (h *UserHandler) CreateUser(c *gin.Context) {
	var form models.UserForm
	if err := h.Helper.BindForm(c, &form); err != nil {
		h.renderNew(c, h.Helper.GetStatusCode(err), form, h.Helper.FormErrors(err))
		return
	}

	user, err := h.userService.CreateUser(form)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, "/users-list", fmt.Sprintf("User %s added.", user.FullName()))
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Render(c, http.StatusOK, "users/show", gin.H{
		"Title": user.FullName(),
		"User":  user,
	})
}

// GET /users/:id/edit
func (h *UserHandler) EditUserForm(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.renderEdit(c, http.StatusOK, user, models.UserFormFrom(user), nil)
}

// POST /users/:id/edit
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var form models.UserForm
	if err := h.Helper.BindForm(c, &form); err != nil {
		user, getErr := h.userService.GetUser(id)
		if getErr != nil {
			h.Helper.SendError(c, getErr)
			return
		}
		h.renderEdit(c, h.Helper.GetStatusCode(err), user, form, h.Helper.FormErrors(err))
		return
	}

	user, err := h.userService.UpdateUser(id, form)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, "/users-list", fmt.Sprintf("User %s updated.", user.FullName()))
}

// POST /users/:id/delete
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.DeleteUser(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.Redirect(c, "/users-list", fmt.Sprintf("User %s deleted.", user.FullName()))
}

func (h *UserHandler) renderNew(c *gin.Context, status int, form models.UserForm, errs map[string]string) {
	h.Helper.Render(c, status, "users/new", gin.H{
		"Title":  "New User",
		"Form":   form,
		"Errors": errs,
	})
}

func (h *UserHandler) renderEdit(c *gin.Context, status int, user *models.User, form models.UserForm, errs map[string]string) {
	h.Helper.Render(c, status, "users/edit", gin.H{
		"Title":  "Edit " + user.FullName(),
		"User":   user,
		"Form":   form,
		"Errors": errs,
	})
}
