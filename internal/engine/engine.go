// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine renders section content into HTML+TailwindCSS markup. Each
// section kind has an embedded Go html/template; templates are compiled once
// at startup and every render is a pure function of kind, content and
// colour scheme.
package engine

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"pagesmith/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Fallback texts used when a field is empty.
const (
	DefaultHeroBadge         = "New & Improved"
	DefaultHeroPrimaryCTA    = "Get Started"
	DefaultHeroSecondaryCTA  = "Learn More"
	DefaultHeroSocialProof   = "10,000+"
	DefaultFeaturesTitle     = "Powerful Features"
	DefaultFeaturesSubtitle  = "Everything you need to succeed, all in one place"
	DefaultTestimonialsTitle = "What Our Customers Say"
	DefaultTestimonialsSub   = "Join thousands of satisfied customers who trust our solution"
	DefaultFAQTitle          = "Frequently Asked Questions"
	DefaultFAQSubtitle       = "Everything you need to know about our service"
	DefaultCTAHeadline       = "Ready to Get Started?"
	DefaultCTADescription    = "Join thousands of satisfied customers and transform your business today"
	DefaultCTAPrimary        = "Start Free Trial"
	DefaultCTASecondary      = "Contact Sales"
	DefaultGenericTitle      = "Custom Section"
)

// Renderer is the contract the editor, generator and HTTP layer depend on.
type Renderer interface {
	Render(kind models.Kind, content models.Content, scheme models.ColorScheme) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTrustedMarkup disables escaping of content fields, so authors can put
// inline HTML in their copy. Only use it when every content source is trusted.
func WithTrustedMarkup() Option {
	return func(e *Engine) { e.trusted = true }
}

// Engine holds the compiled section templates. It is safe for concurrent use.
type Engine struct {
	tmpl    *template.Template
	trusted bool
}

// New compiles the embedded section templates.
func New(opts ...Option) (*Engine, error) {
	tmpl, err := template.New("sections").
		Funcs(template.FuncMap{"seq": seq}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("compile section templates: %w", err)
	}
	for _, k := range models.Kinds {
		if tmpl.Lookup(string(k)) == nil {
			return nil, fmt.Errorf("compile section templates: missing template %q", k)
		}
	}

	e := &Engine{tmpl: tmpl}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Trusted reports whether content fields are interpolated without escaping.
func (e *Engine) Trusted() bool { return e.trusted }

// Render returns the markup of one section. It never fails: empty fields
// fall back to defaults, unknown kinds use the generic template, and a
// template execution error degrades to an escaped dump of the content.
func (e *Engine) Render(kind models.Kind, content models.Content, scheme models.ColorScheme) string {
	if !kind.Known() {
		kind = models.KindGeneric
	}
	content = coerce(kind, content)
	style := styleFor(scheme)

	var data any
	switch c := content.(type) {
	case *models.HeroContent:
		data = e.heroView(c, style)
	case *models.FeaturesContent:
		data = e.featuresView(c, style)
	case *models.TestimonialsContent:
		data = e.testimonialsView(c, style)
	case *models.FAQContent:
		data = e.faqView(c, style)
	case *models.CTAContent:
		data = e.ctaView(c, style)
	case models.GenericContent:
		data = e.genericView(c, style)
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, string(kind), data); err != nil {
		slog.Error("section render failed", "kind", kind, "error", err)
		return fallback(kind, content)
	}
	return strings.TrimSpace(buf.String())
}

// coerce makes sure the record matches kind. A mismatched record is
// re-decoded through its JSON form, which keeps every field the target
// kind understands.
func coerce(kind models.Kind, c models.Content) models.Content {
	if c == nil {
		return models.NewContent(kind)
	}
	if c.Kind() == kind {
		return c
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return models.NewContent(kind)
	}
	out, err := models.DecodeContent(kind, raw)
	if err != nil {
		return models.NewContent(kind)
	}
	return out
}

// styleFor builds the CSS custom properties placed on every section root.
// Colours are validated first so the value can be marked safe CSS.
func styleFor(scheme models.ColorScheme) template.CSS {
	s := scheme.Sanitize()
	return template.CSS(fmt.Sprintf("--primary: %s; --secondary: %s; --accent: %s", s.Primary, s.Secondary, s.Accent))
}

// fallback is the last-resort markup: an escaped JSON dump of the content.
func fallback(kind models.Kind, c models.Content) string {
	return fmt.Sprintf(
		`<section data-section-kind="%s" class="py-16 px-4"><div class="max-w-4xl mx-auto text-center"><h2 class="text-3xl font-bold mb-4">%s</h2><div class="text-gray-600">%s</div></div></section>`,
		template.HTMLEscapeString(string(kind)),
		template.HTMLEscapeString(DefaultGenericTitle),
		template.HTMLEscapeString(dump(c)),
	)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
