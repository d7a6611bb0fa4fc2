// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"pagesmith/internal/models"
	"pagesmith/internal/slug"
)

//go:embed document.html
var documentHTML string

// DefaultDocumentName is used when the page title yields an empty slug.
const DefaultDocumentName = "landing-page"

type documentShell struct {
	tmpl *template.Template
}

type documentData struct {
	Title       string
	Description string
	Colors      models.ColorScheme
	Primary     template.CSS
	Secondary   template.CSS
	Accent      template.CSS
	Sections    template.HTML
}

func newDocumentShell() (*documentShell, error) {
	tmpl, err := template.New("document").Parse(documentHTML)
	if err != nil {
		return nil, fmt.Errorf("compile document shell: %w", err)
	}
	return &documentShell{tmpl: tmpl}, nil
}

// Document renders the standalone HTML export. Section markup is emitted
// verbatim; title and description are escaped for their HTML contexts and
// colours are validated and quoted for the script and style blocks.
func (x *Exporter) Document(p *models.Page) (Artifact, error) {
	body, err := x.shell.render(p)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Format:      FormatHTML,
		Filename:    DocumentFilename(p.Title),
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}, nil
}

func (s *documentShell) render(p *models.Page) ([]byte, error) {
	colors := p.ColorScheme.Sanitize()
	data := documentData{
		Title:       p.Title,
		Description: p.Description,
		Colors:      colors,
		Primary:     template.CSS(colors.Primary),
		Secondary:   template.CSS(colors.Secondary),
		Accent:      template.CSS(colors.Accent),
		Sections:    template.HTML(joinMarkup(p.EnabledSections(), "\n    ")),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

// DocumentFilename derives the .html filename from a page title.
func DocumentFilename(title string) string {
	return slug.Or(title, DefaultDocumentName) + ".html"
}
