// Package web holds the static site pages served next to the chat API.
package web

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/yuin/goldmark"
)

//go:embed pages/*.md
var pagesFS embed.FS

// Pages holds the rendered static pages, converted from markdown once at
// startup.
type Pages struct {
	Index   string
	About   string
	Contact string
}

// Render converts the embedded markdown pages to HTML.
func Render() (*Pages, error) {
	md := goldmark.New()

	render := func(name string) (string, error) {
		src, err := pagesFS.ReadFile("pages/" + name)
		if err != nil {
			return "", fmt.Errorf("failed to read page %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return "", fmt.Errorf("failed to render page %s: %w", name, err)
		}
		return buf.String(), nil
	}

	pages := &Pages{}
	var err error
	if pages.Index, err = render("index.md"); err != nil {
		return nil, err
	}
	if pages.About, err = render("about.md"); err != nil {
		return nil, err
	}
	if pages.Contact, err = render("contact.md"); err != nil {
		return nil, err
	}
	return pages, nil
}
