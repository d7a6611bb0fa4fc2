// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"pagesmith/internal/models"
)

// View structs carry pre-escaped (or trusted) text into the templates, so
// the same template serves both escaping modes.

type heroView struct {
	Style             template.CSS
	Badge             template.HTML
	Headline          template.HTML
	Subheadline       template.HTML
	Description       template.HTML
	PrimaryCTA        template.HTML
	SecondaryCTA      template.HTML
	SocialProofNumber template.HTML
}

type itemView struct {
	Title       template.HTML
	Description template.HTML
}

type featuresView struct {
	Style    template.CSS
	Title    template.HTML
	Subtitle template.HTML
	Features []itemView
}

type testimonialView struct {
	Text   template.HTML
	Author template.HTML
	Role   template.HTML
}

type testimonialsView struct {
	Style        template.CSS
	Title        template.HTML
	Subtitle     template.HTML
	Testimonials []testimonialView
}

type questionView struct {
	Question template.HTML
	Answer   template.HTML
}

type faqView struct {
	Style    template.CSS
	Title    template.HTML
	Subtitle template.HTML
	FAQs     []questionView
}

type ctaView struct {
	Style        template.CSS
	Headline     template.HTML
	Description  template.HTML
	PrimaryCTA   template.HTML
	SecondaryCTA template.HTML
}

type genericView struct {
	Style template.CSS
	Title template.HTML
	Dump  template.HTML
}

// text converts a content field for interpolation.
func (e *Engine) text(s string) template.HTML {
	if e.trusted {
		return template.HTML(s)
	}
	return template.HTML(template.HTMLEscapeString(s))
}

// textOr is text with a default for blank values.
func (e *Engine) textOr(s, def string) template.HTML {
	if strings.TrimSpace(s) == "" {
		s = def
	}
	return e.text(s)
}

func (e *Engine) heroView(c *models.HeroContent, style template.CSS) heroView {
	return heroView{
		Style:             style,
		Badge:             e.textOr(c.Badge, DefaultHeroBadge),
		Headline:          e.text(c.Headline),
		Subheadline:       e.text(c.Subheadline),
		Description:       e.text(c.Description),
		PrimaryCTA:        e.textOr(c.PrimaryCTA, DefaultHeroPrimaryCTA),
		SecondaryCTA:      e.textOr(c.SecondaryCTA, DefaultHeroSecondaryCTA),
		SocialProofNumber: e.textOr(c.SocialProofNumber, DefaultHeroSocialProof),
	}
}

func (e *Engine) featuresView(c *models.FeaturesContent, style template.CSS) featuresView {
	v := featuresView{
		Style:    style,
		Title:    e.textOr(c.Title, DefaultFeaturesTitle),
		Subtitle: e.textOr(c.Subtitle, DefaultFeaturesSubtitle),
	}
	for _, f := range c.Features {
		v.Features = append(v.Features, itemView{Title: e.text(f.Title), Description: e.text(f.Description)})
	}
	return v
}

func (e *Engine) testimonialsView(c *models.TestimonialsContent, style template.CSS) testimonialsView {
	v := testimonialsView{
		Style:    style,
		Title:    e.textOr(c.Title, DefaultTestimonialsTitle),
		Subtitle: e.textOr(c.Subtitle, DefaultTestimonialsSub),
	}
	for _, t := range c.Testimonials {
		v.Testimonials = append(v.Testimonials, testimonialView{
			Text:   e.text(t.Text),
			Author: e.text(t.Author),
			Role:   e.text(t.Role),
		})
	}
	return v
}

func (e *Engine) faqView(c *models.FAQContent, style template.CSS) faqView {
	v := faqView{
		Style:    style,
		Title:    e.textOr(c.Title, DefaultFAQTitle),
		Subtitle: e.textOr(c.Subtitle, DefaultFAQSubtitle),
	}
	for _, q := range c.FAQs {
		v.FAQs = append(v.FAQs, questionView{Question: e.text(q.Question), Answer: e.text(q.Answer)})
	}
	return v
}

func (e *Engine) ctaView(c *models.CTAContent, style template.CSS) ctaView {
	return ctaView{
		Style:        style,
		Headline:     e.textOr(c.Headline, DefaultCTAHeadline),
		Description:  e.textOr(c.Description, DefaultCTADescription),
		PrimaryCTA:   e.textOr(c.PrimaryCTA, DefaultCTAPrimary),
		SecondaryCTA: e.textOr(c.SecondaryCTA, DefaultCTASecondary),
	}
}

func (e *Engine) genericView(c models.GenericContent, style template.CSS) genericView {
	return genericView{
		Style: style,
		Title: e.textOr(c.Title(), DefaultGenericTitle),
		Dump:  e.text(dump(c)),
	}
}

// dump serializes content as compact JSON with sorted keys. HTML escaping
// is left to the caller.
func dump(c models.Content) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}
