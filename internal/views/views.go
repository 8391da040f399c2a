// Package views holds the embedded HTML templates for the public pages.
package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine returns a Fiber view engine backed by the embedded templates.
func Engine() (*html.Engine, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return html.NewFileSystem(http.FS(sub), ".html"), nil
}
