// Package views holds the HTML templates and the helpers they call.
package views

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates
var templateFS embed.FS

// Load parses every page and partial under templates/. Pages are
// addressed by their define name, e.g. "users/list".
func Load() (*template.Template, error) {
	return template.New("blogly").
		Funcs(FuncMap()).
		ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"excerpt":  Excerpt,
	}
}

// Excerpt shortens s to at most n runes on a word boundary.
func Excerpt(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	cut := string(runes[:n])
	if i := strings.LastIndexAny(cut, " \n\t"); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
