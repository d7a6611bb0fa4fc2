// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the structural operations on a page. Every
// operation leaves each section's markup equal to a fresh render of its
// kind, content and the page colour scheme, and never leaves two sections
// sharing an id.
//
// Operations are not safe for concurrent use on the same page; callers
// serialize access per page.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"pagesmith/internal/engine"
	"pagesmith/internal/models"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrIndexOutOfRange = errors.New("section index out of range")
	ErrKindMismatch    = errors.New("content kind does not match section kind")
	ErrUnknownKind     = errors.New("unknown section kind")
	ErrUnknownPreset   = errors.New("unknown color preset")
	ErrEmptyName       = errors.New("section name is empty")
	ErrInconsistent    = errors.New("page is inconsistent")
)

// Status reports whether an operation changed the page.
type Status string

const (
	StatusApplied Status = "applied"
	StatusNoop    Status = "noop"
)

// Outcome describes the result of an operation for the caller to surface
// as a notice. Err is set when the operation was rejected.
type Outcome struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	SectionID string `json:"section_id,omitempty"`
	Err       error  `json:"-"`
}

// Applied reports whether the page was modified.
func (o Outcome) Applied() bool { return o.Status == StatusApplied }

func applied(msg, sectionID string) Outcome {
	return Outcome{Status: StatusApplied, Message: msg, SectionID: sectionID}
}

func noop(msg string) Outcome {
	return Outcome{Status: StatusNoop, Message: msg}
}

// Option configures an Editor.
type Option func(*Editor)

// WithStrict makes rule violations (unknown ids, bad indices, mismatched
// content) panic instead of returning a rejected Outcome. Strict mode also
// re-verifies the whole page after every applied operation.
func WithStrict(strict bool) Option {
	return func(e *Editor) { e.strict = strict }
}

// WithIDSource overrides how fresh section ids and duplicate suffixes are
// drawn.
func WithIDSource(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// Editor applies operations to pages, rendering through the given renderer.
type Editor struct {
	renderer engine.Renderer
	strict   bool
	newID    func() string
}

// New creates an editor.
func New(r engine.Renderer, opts ...Option) *Editor {
	e := &Editor{renderer: r, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether violations panic.
func (e *Editor) Strict() bool { return e.strict }

// Render renders one section against the page palette.
func (e *Editor) Render(p *models.Page, s *models.Section) string {
	return e.renderer.Render(s.Kind, s.Content, p.ColorScheme)
}

// Compile renders every section of the page. It is used when a page is
// created from generator output.
func (e *Editor) Compile(p *models.Page) {
	for i := range p.Sections {
		p.Sections[i].Markup = e.Render(p, &p.Sections[i])
	}
}

// Verify checks id uniqueness and that every section's markup matches a
// fresh render.
func (e *Editor) Verify(p *models.Page) error {
	seen := make(map[string]bool, len(p.Sections))
	for i := range p.Sections {
		s := &p.Sections[i]
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInconsistent, s.ID)
		}
		seen[s.ID] = true
		if s.Markup != e.Render(p, s) {
			return fmt.Errorf("%w: section %q markup is stale", ErrInconsistent, s.ID)
		}
	}
	return nil
}

// violation handles a rejected operation.
func (e *Editor) violation(op string, err error) Outcome {
	if e.strict {
		panic(fmt.Sprintf("editor: %s: %v", op, err))
	}
	slog.Warn("editor operation rejected", "op", op, "error", err)
	return Outcome{Status: StatusNoop, Message: message(err), Err: err}
}

// done runs the strict-mode consistency check after an applied operation.
func (e *Editor) done(p *models.Page, op string, o Outcome) Outcome {
	if e.strict && o.Applied() {
		if err := e.Verify(p); err != nil {
			panic(fmt.Sprintf("editor: %s: %v", op, err))
		}
	}
	return o
}

func message(err error) string {
	switch {
	case errors.Is(err, ErrSectionNotFound):
		return "That section no longer exists."
	case errors.Is(err, ErrIndexOutOfRange):
		return "That position is outside the page."
	case errors.Is(err, ErrKindMismatch):
		return "That content does not fit this section type."
	case errors.Is(err, ErrUnknownKind):
		return "Unknown section type."
	case errors.Is(err, ErrUnknownPreset):
		return "Unknown color preset."
	case errors.Is(err, ErrEmptyName):
		return "Section name cannot be empty."
	case errors.Is(err, models.ErrInvalidColor):
		return "Please choose valid colors."
	}
	return "The change could not be applied."
}

// maxIDDraws bounds how often gen is asked before uniqueID falls back to a
// random UUID.
const maxIDDraws = 8

// uniqueID draws ids from gen until one is not used by the page.
func uniqueID(p *models.Page, gen func() string) string {
	for range maxIDDraws {
		id := gen()
		if id != "" && p.Index(id) < 0 {
			return id
		}
	}
	for {
		if id := uuid.NewString(); p.Index(id) < 0 {
			return id
		}
	}
}
