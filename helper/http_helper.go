package helper

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"

	"blogly/middleware"
	"blogly/models"
)

const (
	NotFoundTemplate = "errors/404"
	ErrorTemplate    = "errors/500"
)

// HTTPHelper renders pages and maps service errors to responses.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     *slog.Logger
}

// NewHTTPHelper builds a helper whose validation messages name fields by
// their form key and read in English.
func NewHTTPHelper(logger *slog.Logger) (*HTTPHelper, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
		Logger:     logger,
	}, nil
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var notFound models.ErrorNotFound
	var conflict models.ErrorConflict
	var validation models.ErrorValidation
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ValidateForm checks the validate tags of form and returns
// models.ErrorValidation with one message per failing field.
func (u *HTTPHelper) ValidateForm(form interface{}) error {
	err := u.Validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = fe.Translate(u.Translator)
	}
	return models.ErrorValidation{Fields: fields}
}

// BindForm binds the request form into form, normalizes it and validates it.
func (u *HTTPHelper) BindForm(c *gin.Context, form interface{ Normalize() }) error {
	if err := c.ShouldBind(form); err != nil {
		return models.ErrorValidation{Fields: map[string]string{"form": "invalid form input: " + err.Error()}}
	}
	form.Normalize()
	return u.ValidateForm(form)
}

// ParseID reads a numeric path parameter. A malformed id is treated like
// a missing row and answered with the not-found page.
func (u *HTTPHelper) ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		u.SendNotFound(c, "Page not found")
		return 0, false
	}
	return uint(id), true
}

// Render writes an HTML page, adding the pending notices to data.
func (u *HTTPHelper) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Notices"] = middleware.PopNotices(c)
	c.HTML(status, name, data)
}

// Redirect sends a 302 after queueing notice (when non-empty).
func (u *HTTPHelper) Redirect(c *gin.Context, location, notice string) {
	if notice != "" {
		middleware.AddNotice(c, notice)
	}
	c.Redirect(http.StatusFound, location)
}

// SendNotFound renders the not-found page.
func (u *HTTPHelper) SendNotFound(c *gin.Context, message string) {
	u.Render(c, http.StatusNotFound, NotFoundTemplate, gin.H{
		"Title":   "Not Found",
		"Message": message,
	})
}

// SendError renders the page matching err's status. Validation and
// conflict errors are handled by the caller, which re-renders the form.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	_ = c.Error(err)

	if status == http.StatusNotFound {
		u.SendNotFound(c, err.Error())
		return
	}

	u.Logger.Error("request failed",
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", middleware.GetRequestID(c),
	)
	u.Render(c, status, ErrorTemplate, gin.H{
		"Title":   http.StatusText(status),
		"Message": "Something went wrong. Please try again.",
	})
}

// FormErrors returns the per-field messages of a validation or conflict
// error, or nil when err is something else.
func (u *HTTPHelper) FormErrors(err error) map[string]string {
	var validation models.ErrorValidation
	if errors.As(err, &validation) {
		return validation.Fields
	}
	var conflict models.ErrorConflict
	if errors.As(err, &conflict) {
		return map[string]string{"form": conflict.Message}
	}
	return nil
}
