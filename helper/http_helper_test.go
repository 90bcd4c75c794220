package helper

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogly/models"
)

func newHelper(t *testing.T) *HTTPHelper {
	t.Helper()
	h, err := NewHTTPHelper(nil)
	require.NoError(t, err)
	return h
}

func TestGetStatusCode(t *testing.T) {
	h := newHelper(t)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", models.ErrorNotFound{Entity: "user", ID: 1}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", models.ErrorNotFound{Entity: "tag", ID: 2}), http.StatusNotFound},
		{"conflict", models.ErrorConflict{Message: "taken"}, http.StatusConflict},
		{"validation", models.ErrorValidation{Fields: map[string]string{"title": "bad"}}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.GetStatusCode(tt.err))
		})
	}
}

func TestValidateFormUsesFormNames(t *testing.T) {
	h := newHelper(t)

	err := h.ValidateForm(models.UserForm{ImageURL: strings.Repeat("x", 2049)})
	require.Error(t, err)

	var verr models.ErrorValidation
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "first_name is a required field", verr.Fields["first_name"])
	assert.Equal(t, "last_name is a required field", verr.Fields["last_name"])
	assert.Contains(t, verr.Fields["image_url"], "image_url")

	assert.NoError(t, h.ValidateForm(models.UserForm{FirstName: "Ada", LastName: "Lovelace"}))
}

func TestValidateFormAcceptsAnyImageURL(t *testing.T) {
	h := newHelper(t)

	for _, image := range []string{"", "/static/ada.png", "example.com/a.png", "https://example.com/a.png"} {
		form := models.UserForm{FirstName: "Ada", LastName: "Lovelace", ImageURL: image}
		assert.NoError(t, h.ValidateForm(form), image)
	}
}

func TestFormErrors(t *testing.T) {
	h := newHelper(t)

	assert.Equal(t, map[string]string{"form": "taken"}, h.FormErrors(models.ErrorConflict{Message: "taken"}))
	assert.Equal(t, map[string]string{"name": "bad"}, h.FormErrors(models.ErrorValidation{Fields: map[string]string{"name": "bad"}}))
	assert.Nil(t, h.FormErrors(errors.New("boom")))
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newHelper(t)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New(NotFoundTemplate).Parse("missing: {{.Message}}")))
	router.GET("/things/:id", func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		c.String(http.StatusOK, "id=%d", id)
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/things/42", http.StatusOK, "id=42"},
		{"/things/abc", http.StatusNotFound, "missing: Page not found"},
		{"/things/0", http.StatusNotFound, "missing: Page not found"},
		{"/things/-1", http.StatusNotFound, "missing: Page not found"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.code, w.Code, tt.path)
		assert.Equal(t, tt.body, w.Body.String(), tt.path)
	}
}
