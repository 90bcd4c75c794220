package routes

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"blogly/config"
	"blogly/middleware"
	"blogly/models"
	"blogly/testutils"
)

type RoutesTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

func (suite *RoutesTestSuite) SetupTest() {
	suite.db = testutils.SetupTestDB(suite.T())
	suite.cookies = map[string]*http.Cookie{}
	suite.setupRouter()
}

func (suite *RoutesTestSuite) setupRouter() {
	cfg := config.Default()
	cfg.SecretKey = "test-secret"
	cfg.Server.Mode = gin.TestMode
	cfg.CORS.AllowOrigins = []string{"http://localhost:8080"}

	router, err := Setup(suite.db, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
	suite.router = router
}

// do sends a request carrying the cookies kept from earlier responses.
func (suite *RoutesTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range suite.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(suite.cookies, cookie.Name)
			continue
		}
		suite.cookies[cookie.Name] = cookie
	}
	return w
}

func (suite *RoutesTestSuite) get(path string) *httptest.ResponseRecorder {
	return suite.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (suite *RoutesTestSuite) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return suite.do(req)
}

func (suite *RoutesTestSuite) assertRedirect(w *httptest.ResponseRecorder, location string) {
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal(location, w.Header().Get("Location"))
}

func (suite *RoutesTestSuite) TestHomeRedirectsToUserList() {
	suite.assertRedirect(suite.get("/"), "/users-list")
}

func (suite *RoutesTestSuite) TestHealth() {
	w := suite.get("/health")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"healthy"}`, w.Body.String())
}

func (suite *RoutesTestSuite) TestCreateUserShowsNoticeOnce() {
	w := suite.post("/users/new", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"image_url":  {""},
	})
	suite.assertRedirect(w, "/users-list")
	suite.Contains(suite.cookies, middleware.NoticeCookieName)

	w = suite.get("/users-list")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Ada Lovelace")
	suite.Contains(w.Body.String(), "User Ada Lovelace added.")

	w = suite.get("/users")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Ada Lovelace")
	suite.NotContains(w.Body.String(), "User Ada Lovelace added.")

	var user models.User
	suite.Require().NoError(suite.db.First(&user).Error)
	suite.Nil(user.ImageURL)
}

func (suite *RoutesTestSuite) TestCreateUserValidation() {
	w := suite.post("/users/new", url.Values{"first_name": {"Ada"}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "last_name is a required field")
	suite.Contains(w.Body.String(), `value="Ada"`)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *RoutesTestSuite) TestRelativeImageURLAccepted() {
	w := suite.post("/users/new", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"image_url":  {"/static/ada.png"},
	})
	suite.assertRedirect(w, "/users-list")

	var user models.User
	suite.Require().NoError(suite.db.First(&user).Error)
	suite.Require().NotNil(user.ImageURL)
	suite.Equal("/static/ada.png", *user.ImageURL)

	w = suite.post(fmt.Sprintf("/users/%d/edit", user.ID), url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"image_url":  {"example.com/a.png"},
	})
	suite.assertRedirect(w, "/users-list")

	w = suite.get(fmt.Sprintf("/users/%d", user.ID))
	suite.Contains(w.Body.String(), `src="example.com/a.png"`)
}

func (suite *RoutesTestSuite) TestEditUser() {
	user := testutils.CreateTestUser(suite.T(), suite.db, "Ada", "Lovelace")
	path := fmt.Sprintf("/users/%d/edit", user.ID)

	w := suite.get(path)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `value="Lovelace"`)

	w = suite.post(path, url.Values{
		"first_name": {"Augusta"},
		"last_name":  {"King"},
		"image_url":  {"https://example.com/ada.png"},
	})
	suite.assertRedirect(w, "/users-list")

	w = suite.get(fmt.Sprintf("/users/%d", user.ID))
	suite.Contains(w.Body.String(), "Augusta King")
	suite.Contains(w.Body.String(), "https://example.com/ada.png")
}

func (suite *RoutesTestSuite) TestPostLifecycle() {
	user := testutils.CreateTestUser(suite.T(), suite.db, "Ada", "Lovelace")
	math := testutils.CreateTestTag(suite.T(), suite.db, "math")
	engines := testutils.CreateTestTag(suite.T(), suite.db, "engines")
	userPath := fmt.Sprintf("/users/%d", user.ID)

	w := suite.get(userPath + "/posts/new")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "engines")

	w = suite.post(userPath+"/posts/new", url.Values{
		"title":   {"Note G"},
		"content": {"The first *program*."},
		"tag_ids": {fmt.Sprint(math.ID), fmt.Sprint(engines.ID)},
	})
	suite.assertRedirect(w, userPath)

	w = suite.get(userPath)
	suite.Contains(w.Body.String(), "Post &#39;Note G&#39; added.")
	suite.Contains(w.Body.String(), "Note G")
	suite.Contains(w.Body.String(), "The first *program*.")

	var post models.Post
	suite.Require().NoError(suite.db.Where("title = ?", "Note G").First(&post).Error)
	postPath := fmt.Sprintf("/posts/%d", post.ID)

	w = suite.get(postPath)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "<em>program</em>")
	suite.Contains(w.Body.String(), fmt.Sprintf(`href="/tags/%d">math`, math.ID))
	suite.Contains(w.Body.String(), fmt.Sprintf(`href="/tags/%d">engines`, engines.ID))

	w = suite.get(fmt.Sprintf("/tags/%d", math.ID))
	suite.Contains(w.Body.String(), "Note G")

	w = suite.post(postPath+"/edit", url.Values{
		"title":   {"Note G, revised"},
		"content": {"Bernoulli numbers."},
	})
	suite.assertRedirect(w, userPath)
	suite.Zero(testutils.CountPostTags(suite.T(), suite.db))

	w = suite.get(postPath)
	suite.Contains(w.Body.String(), "Note G, revised")
	suite.NotContains(w.Body.String(), fmt.Sprintf(`href="/tags/%d"`, math.ID))

	w = suite.post(postPath+"/delete", nil)
	suite.assertRedirect(w, userPath)

	w = suite.get(userPath)
	suite.Contains(w.Body.String(), "Post &#39;Note G, revised&#39; deleted.")
	suite.NotContains(w.Body.String(), fmt.Sprintf(`href="%s"`, postPath))

	suite.Equal(http.StatusNotFound, suite.get(postPath).Code)
}

func (suite *RoutesTestSuite) TestCreatePostValidation() {
	user := testutils.CreateTestUser(suite.T(), suite.db, "Ada", "Lovelace")

	w := suite.post(fmt.Sprintf("/users/%d/posts/new", user.ID), url.Values{"title": {"Untitled"}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "content is a required field")
}

func (suite *RoutesTestSuite) TestDeleteUserRemovesPosts() {
	user := testutils.CreateTestUser(suite.T(), suite.db, "Ada", "Lovelace")
	tag := testutils.CreateTestTag(suite.T(), suite.db, "math")
	testutils.CreateTestPost(suite.T(), suite.db, user, "Note G", tag)

	w := suite.post(fmt.Sprintf("/users/%d/delete", user.ID), nil)
	suite.assertRedirect(w, "/users-list")

	w = suite.get("/users-list")
	suite.Contains(w.Body.String(), "User Ada Lovelace deleted.")
	suite.Contains(w.Body.String(), "No users yet.")

	var posts int64
	suite.Require().NoError(suite.db.Model(&models.Post{}).Count(&posts).Error)
	suite.Zero(posts)
	suite.Zero(testutils.CountPostTags(suite.T(), suite.db))
}

func (suite *RoutesTestSuite) TestTagLifecycle() {
	user := testutils.CreateTestUser(suite.T(), suite.db, "Ada", "Lovelace")
	post := testutils.CreateTestPost(suite.T(), suite.db, user, "Note G")

	w := suite.get("/tags/new")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Note G")

	w = suite.post("/tags/new", url.Values{"name": {"math"}, "post_ids": {fmt.Sprint(post.ID)}})
	suite.assertRedirect(w, "/tags")

	w = suite.get("/tags")
	suite.Contains(w.Body.String(), "Tag &#39;math&#39; added.")

	var tag models.Tag
	suite.Require().NoError(suite.db.Where("name = ?", "math").First(&tag).Error)
	tagPath := fmt.Sprintf("/tags/%d", tag.ID)

	w = suite.get(tagPath)
	suite.Contains(w.Body.String(), "Note G")

	w = suite.post(tagPath+"/edit", url.Values{"name": {"mathematics"}})
	suite.assertRedirect(w, "/tags")

	w = suite.get(tagPath)
	suite.Contains(w.Body.String(), "mathematics")
	suite.NotContains(w.Body.String(), "Note G")

	w = suite.post(tagPath+"/delete", nil)
	suite.assertRedirect(w, "/tags")
	suite.Equal(http.StatusNotFound, suite.get(tagPath).Code)

	suite.Equal(http.StatusOK, suite.get(fmt.Sprintf("/posts/%d", post.ID)).Code)
}

func (suite *RoutesTestSuite) TestDuplicateTagConflict() {
	testutils.CreateTestTag(suite.T(), suite.db, "math")

	w := suite.post("/tags/new", url.Values{"name": {"math"}})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *RoutesTestSuite) TestNotFound() {
	for _, path := range []string{
		"/users/999",
		"/users/999/edit",
		"/users/999/posts/new",
		"/posts/999",
		"/posts/999/edit",
		"/tags/999",
		"/tags/999/edit",
		"/users/abc",
		"/nowhere",
	} {
		w := suite.get(path)
		suite.Equal(http.StatusNotFound, w.Code, path)
		suite.Contains(w.Body.String(), "Not Found", path)
	}

	for _, path := range []string{"/users/999/delete", "/posts/999/delete", "/tags/999/delete"} {
		suite.Equal(http.StatusNotFound, suite.post(path, nil).Code, path)
	}
}
