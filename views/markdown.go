package views

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown renders post content to sanitized HTML. Raw HTML in the source
// is dropped by goldmark and anything left is filtered by the UGC policy.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
