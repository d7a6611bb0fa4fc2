// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export turns a compiled page into downloadable artifacts: a
// standalone HTML document and an embeddable React component. Both exporters
// are pure: they read only enabled sections, in page order, and the same
// page always produces byte-identical output.
package export

import (
	"errors"
	"fmt"
	"strings"

	"pagesmith/internal/models"
)

// ErrUnknownFormat is returned for export formats other than html and react.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export target.
type Format string

const (
	FormatHTML  Format = "html"
	FormatReact Format = "react"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatHTML, FormatReact}

// ParseFormat accepts a format name or one of its aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "document":
		return FormatHTML, nil
	case "react", "tsx", "component":
		return FormatReact, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Artifact is a rendered export ready to be downloaded or uploaded.
type Artifact struct {
	Format      Format `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"-"`
}

// Exporter holds the compiled document shell. It is safe for concurrent use.
type Exporter struct {
	shell *documentShell
}

// New compiles the embedded document shell.
func New() (*Exporter, error) {
	shell, err := newDocumentShell()
	if err != nil {
		return nil, err
	}
	return &Exporter{shell: shell}, nil
}

// Build produces the artifact for the requested format.
func (x *Exporter) Build(p *models.Page, f Format) (Artifact, error) {
	switch f {
	case FormatHTML:
		return x.Document(p)
	case FormatReact:
		return Component(p), nil
	}
	return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func joinMarkup(sections []models.Section, sep string) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.Markup
	}
	return strings.Join(parts, sep)
}
