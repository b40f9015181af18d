// internal/infra/templates/renderer.go
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed emails/*.html
var emailFS embed.FS

// HTMLRenderer implements mail.Renderer over the embedded email templates.
// Templates are addressed by bare name, e.g. "job_status_update".
type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(emailFS, "emails/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &HTMLRenderer{templates: tmpl}, nil
}

func (r *HTMLRenderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
