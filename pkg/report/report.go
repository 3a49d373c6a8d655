// Package report renders digests to HTML and stores them as files
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/demajh/research-listener/pkg/domain"
)

//go:embed templates/digest.html
var templatesFS embed.FS

// Renderer converts digest markdown to a standalone HTML document
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	tmpl   *template.Template
}

// NewRenderer creates a renderer with the embedded page template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/digest.html")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify)),
		policy: bluemonday.UGCPolicy(),
		tmpl:   tmpl,
	}, nil
}

// Fragment converts markdown to sanitized HTML without the page wrapper
func (r *Renderer) Fragment(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// HTML converts markdown to a full HTML page
func (r *Renderer) HTML(title, markdown string) (string, error) {
	body, err := r.Fragment(markdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body), //nolint:gosec // sanitized by bluemonday
	}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Writer stores rendered digests in a directory
type Writer struct {
	dir      string
	renderer *Renderer
}

// NewWriter makes a writer for the given directory, created on first write
func NewWriter(dir string, renderer *Renderer) *Writer {
	return &Writer{dir: dir, renderer: renderer}
}

// Write stores the markdown and html versions of a digest and returns their paths
func (w *Writer) Write(d domain.Digest) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}

	base := filepath.Join(w.dir, FileBase(d))
	mdPath, htmlPath := base+".md", base+".html"

	if err := os.WriteFile(mdPath, []byte(d.Markdown), 0o600); err != nil {
		return nil, fmt.Errorf("write markdown report: %w", err)
	}

	page, err := w.renderer.HTML("arXiv digest: "+d.Profile.Interest, d.Markdown)
	if err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	if err := os.WriteFile(htmlPath, []byte(page), 0o600); err != nil {
		return nil, fmt.Errorf("write html report: %w", err)
	}

	return []string{mdPath, htmlPath}, nil
}

// FileBase returns the report file name without extension, e.g. a_x.com_20261019
func FileBase(d domain.Digest) string {
	name := strings.NewReplacer("@", "_", "/", "_", `\`, "_").Replace(d.Email)
	return name + "_" + d.GeneratedAt.UTC().Format("20060102")
}
