package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogly/models"
)

func TestMarkdownRendersAndSanitizes(t *testing.T) {
	out := string(Markdown("Hello **world**\n\n<script>alert(1)</script>\n\n[x](javascript:alert(1))"))

	assert.Contains(t, out, "<strong>world</strong>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("  short  ", 20))
	assert.Equal(t, "the quick brown…", Excerpt("the quick brown fox jumps", 18))
}

func TestLoadDefinesPages(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"users/list", "users/new", "users/edit", "users/show",
		"posts/new", "posts/edit", "posts/show",
		"tags/list", "tags/new", "tags/edit", "tags/show",
		"errors/404", "errors/500",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRenderPostPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	post := &models.Post{
		ID:      7,
		Title:   "Notes",
		Content: "Some *markdown*",
		User:    models.User{ID: 3, FirstName: "Ada", LastName: "Lovelace"},
		Tags:    []models.Tag{{ID: 1, Name: "math"}},
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "posts/show", map[string]any{
		"Title":   post.Title,
		"Post":    post,
		"Notices": []string{"Post 'Notes' added."},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<em>markdown</em>")
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, `href="/tags/1"`)
	assert.Contains(t, html, "Post &#39;Notes&#39; added.")
}
