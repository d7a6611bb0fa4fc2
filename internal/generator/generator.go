// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns a free-text prompt into a compiled Page. The LLM
// is asked for a JSON page description, which is decoded tolerantly, given
// fresh ids where needed, and rendered through the editor. A call either
// returns a complete page or an *Error; there is no partial result.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pagesmith/internal/ai"
	"pagesmith/internal/editor"
	"pagesmith/internal/models"
	"pagesmith/internal/schema"
)

const (
	DefaultTimeout      = 90 * time.Second
	DefaultMaxPromptLen = 500
)

// LLM is the slice of the provider registry the generator needs.
type LLM interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ActiveName() string
}

// Moderator screens prompts before they reach the LLM.
type Moderator interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithModerator enables prompt moderation. Moderation errors fail open.
func WithModerator(m Moderator) Option {
	return func(g *Generator) { g.moderator = m }
}

// WithTimeout bounds the LLM call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithMaxPromptLen sets the prompt length limit in characters.
func WithMaxPromptLen(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxPrompt = n
		}
	}
}

// WithIDSource overrides how replacement section ids are drawn.
func WithIDSource(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

// Generator produces pages from prompts. It is safe for concurrent use.
type Generator struct {
	llm       LLM
	moderator Moderator
	editor    *editor.Editor
	timeout   time.Duration
	maxPrompt int
	newID     func() string
}

// New creates a generator that compiles pages with ed.
func New(llm LLM, ed *editor.Editor, opts ...Option) *Generator {
	g := &Generator{
		llm:       llm,
		editor:    ed,
		timeout:   DefaultTimeout,
		maxPrompt: DefaultMaxPromptLen,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Provider returns the name of the LLM provider currently in use.
func (g *Generator) Provider() string { return g.llm.ActiveName() }

// ValidatePrompt checks the prompt before any network call.
func (g *Generator) ValidatePrompt(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return failure(ReasonPrompt, "Please describe the landing page you want.", nil)
	}
	if n := utf8.RuneCountInString(prompt); n > g.maxPrompt {
		return failure(ReasonPrompt,
			fmt.Sprintf("Your description is too long (%d characters, max %d).", n, g.maxPrompt), nil)
	}
	return nil
}

// Generate asks the LLM for a page and returns it fully rendered.
func (g *Generator) Generate(ctx context.Context, prompt string) (*models.Page, error) {
	if err := g.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	prompt = strings.TrimSpace(prompt)

	if err := g.moderate(ctx, prompt); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	reply, err := g.llm.GenerateJSON(ctx, systemPrompt, userPrompt(prompt))
	if err != nil {
		slog.Error("page generation failed", "provider", g.llm.ActiveName(), "error", err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, failure(ReasonProvider, "Generation timed out. Please try again.", err)
		}
		return nil, failure(ReasonProvider, "AI request failed. Check your provider configuration.", err)
	}

	page, err := g.decode(reply)
	if err != nil {
		slog.Error("page generation returned unusable output", "provider", g.llm.ActiveName(), "error", err)
		return nil, failure(ReasonSchema, "The generated page could not be read. Please try again.", err)
	}

	g.editor.Compile(page)
	slog.Info("page generated",
		"provider", g.llm.ActiveName(),
		"sections", len(page.Sections),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return page, nil
}

func (g *Generator) moderate(ctx context.Context, prompt string) error {
	if g.moderator == nil {
		return nil
	}
	res, err := g.moderator.CheckPrompt(ctx, prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return nil
	}
	if res.Safe {
		return nil
	}
	categories := strings.Join(res.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)
	return failure(ReasonFlagged, fmt.Sprintf(
		"Your prompt was flagged for: %s. Please reformulate your request and try again.", categories), nil)
}

type wirePage struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ColorScheme models.ColorScheme `json:"colorScheme"`
	Sections    []wireSection      `json:"sections"`
}

type wireSection struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Enabled *bool           `json:"enabled"`
	Content json.RawMessage `json:"content"`
}

// decode builds an uncompiled page from the LLM reply.
func (g *Generator) decode(reply string) (*models.Page, error) {
	var w wirePage
	if err := json.Unmarshal([]byte(extractJSON(reply)), &w); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	if strings.TrimSpace(w.Title) == "" {
		return nil, errors.New("decode page: missing title")
	}
	if len(w.Sections) == 0 {
		return nil, errors.New("decode page: no sections")
	}

	page := &models.Page{
		Title:       strings.TrimSpace(w.Title),
		Description: strings.TrimSpace(w.Description),
		ColorScheme: w.ColorScheme.Sanitize(),
		Sections:    make([]models.Section, 0, len(w.Sections)),
	}
	for i, ws := range w.Sections {
		s, err := g.section(page, ws)
		if err != nil {
			return nil, fmt.Errorf("decode section %d: %w", i, err)
		}
		page.Sections = append(page.Sections, s)
	}
	return page, nil
}

func (g *Generator) section(page *models.Page, ws wireSection) (models.Section, error) {
	kind, ok := models.ParseKind(ws.Kind)
	if !ok {
		kind = models.InferKind(ws.Name)
	}

	content, err := models.DecodeContent(kind, ws.Content)
	if err != nil {
		return models.Section{}, err
	}
	name := strings.TrimSpace(ws.Name)
	if name == "" {
		name = defaultName(kind)
	}
	if gc, ok := content.(models.GenericContent); ok && gc.Title() == "" {
		gc["title"] = name
	}
	if missing := schema.Validate(content); len(missing) > 0 {
		slog.Warn("generated section is incomplete, defaults will be rendered",
			"section", name, "kind", kind, "missing", missing)
	}

	id := strings.TrimSpace(ws.ID)
	if id == "" || page.Index(id) >= 0 {
		id = g.freshID(page)
	}

	enabled := true
	if ws.Enabled != nil {
		enabled = *ws.Enabled
	}

	return models.Section{
		ID:      id,
		Kind:    kind,
		Name:    name,
		Enabled: enabled,
		Content: content,
	}, nil
}

// maxIDDraws bounds how often the id source is asked before falling back
// to a random UUID.
const maxIDDraws = 8

func (g *Generator) freshID(page *models.Page) string {
	for range maxIDDraws {
		id := g.newID()
		if id != "" && page.Index(id) < 0 {
			return id
		}
	}
	for {
		if id := uuid.NewString(); page.Index(id) < 0 {
			return id
		}
	}
}

func defaultName(kind models.Kind) string {
	switch kind {
	case models.KindFAQ:
		return "FAQ"
	case models.KindCTA:
		return "CTA"
	case models.KindGeneric:
		return "Custom Section"
	}
	return strings.ToUpper(string(kind[:1])) + string(kind[1:])
}
