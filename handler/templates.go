package handler

import (
	"embed"
	"html/template"
)

//go:embed web
var webFS embed.FS

// Templates parses the embedded pages for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(webFS, "web/*.html"))
}
