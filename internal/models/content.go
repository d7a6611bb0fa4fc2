// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidContent is returned when section content cannot be decoded into
// the record shape of its kind.
var ErrInvalidContent = errors.New("invalid section content")

// Content is the kind-specific record behind a section. Records are value
// data: Clone returns a copy that shares no mutable state with the original.
type Content interface {
	Kind() Kind
	Clone() Content
}

// Item is one entry of an ordered sub-record collection (a feature, a
// testimonial, a question), addressed by field name.
type Item map[string]string

// Lister is implemented by records that carry ordered item collections.
type Lister interface {
	Content
	Items(list string) ([]Item, bool)
	SetItems(list string, items []Item) bool
}

// HeroContent is the opening banner of a page.
type HeroContent struct {
	Headline          string `json:"headline"`
	Subheadline       string `json:"subheadline"`
	Description       string `json:"description"`
	PrimaryCTA        string `json:"primaryCTA,omitempty"`
	SecondaryCTA      string `json:"secondaryCTA,omitempty"`
	Badge             string `json:"badge,omitempty"`
	SocialProofNumber string `json:"socialProofNumber,omitempty"`
}

func (c *HeroContent) Kind() Kind { return KindHero }

func (c *HeroContent) Clone() Content {
	cp := *c
	return &cp
}

// Feature is a single entry of a features grid.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FeaturesContent is a titled grid of features.
type FeaturesContent struct {
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Features []Feature `json:"features"`
}

func (c *FeaturesContent) Kind() Kind { return KindFeatures }

func (c *FeaturesContent) Clone() Content {
	cp := *c
	cp.Features = append([]Feature(nil), c.Features...)
	return &cp
}

func (c *FeaturesContent) Items(list string) ([]Item, bool) {
	if list != "features" {
		return nil, false
	}
	items := make([]Item, len(c.Features))
	for i, f := range c.Features {
		items[i] = Item{"title": f.Title, "description": f.Description}
	}
	return items, true
}

func (c *FeaturesContent) SetItems(list string, items []Item) bool {
	if list != "features" {
		return false
	}
	c.Features = make([]Feature, len(items))
	for i, it := range items {
		c.Features[i] = Feature{Title: it["title"], Description: it["description"]}
	}
	return true
}

// Testimonial is a customer quote.
type Testimonial struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// TestimonialsContent is a titled collection of customer quotes.
type TestimonialsContent struct {
	Title        string        `json:"title,omitempty"`
	Subtitle     string        `json:"subtitle,omitempty"`
	Testimonials []Testimonial `json:"testimonials"`
}

func (c *TestimonialsContent) Kind() Kind { return KindTestimonials }

func (c *TestimonialsContent) Clone() Content {
	cp := *c
	cp.Testimonials = append([]Testimonial(nil), c.Testimonials...)
	return &cp
}

func (c *TestimonialsContent) Items(list string) ([]Item, bool) {
	if list != "testimonials" {
		return nil, false
	}
	items := make([]Item, len(c.Testimonials))
	for i, t := range c.Testimonials {
		items[i] = Item{"text": t.Text, "author": t.Author, "role": t.Role}
	}
	return items, true
}

func (c *TestimonialsContent) SetItems(list string, items []Item) bool {
	if list != "testimonials" {
		return false
	}
	c.Testimonials = make([]Testimonial, len(items))
	for i, it := range items {
		c.Testimonials[i] = Testimonial{Text: it["text"], Author: it["author"], Role: it["role"]}
	}
	return true
}

// Question is a single FAQ entry.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQContent is a titled list of questions and answers.
type FAQContent struct {
	Title    string     `json:"title,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	FAQs     []Question `json:"faqs"`
}

func (c *FAQContent) Kind() Kind { return KindFAQ }

func (c *FAQContent) Clone() Content {
	cp := *c
	cp.FAQs = append([]Question(nil), c.FAQs...)
	return &cp
}

func (c *FAQContent) Items(list string) ([]Item, bool) {
	if list != "faqs" {
		return nil, false
	}
	items := make([]Item, len(c.FAQs))
	for i, q := range c.FAQs {
		items[i] = Item{"question": q.Question, "answer": q.Answer}
	}
	return items, true
}

func (c *FAQContent) SetItems(list string, items []Item) bool {
	if list != "faqs" {
		return false
	}
	c.FAQs = make([]Question, len(items))
	for i, it := range items {
		c.FAQs[i] = Question{Question: it["question"], Answer: it["answer"]}
	}
	return true
}

// CTAContent is the closing call to action.
type CTAContent struct {
	Headline     string `json:"headline,omitempty"`
	Description  string `json:"description,omitempty"`
	PrimaryCTA   string `json:"primaryCTA,omitempty"`
	SecondaryCTA string `json:"secondaryCTA,omitempty"`
}

func (c *CTAContent) Kind() Kind { return KindCTA }

func (c *CTAContent) Clone() Content {
	cp := *c
	return &cp
}

// GenericContent is the free-form record of sections that match no other
// kind. Every key is preserved verbatim.
type GenericContent map[string]any

func (c GenericContent) Kind() Kind { return KindGeneric }

func (c GenericContent) Clone() Content {
	return GenericContent(deepCopy(map[string]any(c)).(map[string]any))
}

// Title returns the "title" field as a string, or "" when it is absent.
func (c GenericContent) Title() string {
	return str(c, "title")
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopy(vv)
		}
		return out
	default:
		return v
	}
}

// NewContent returns an empty record for the kind. Unknown kinds get a
// generic record.
func NewContent(kind Kind) Content {
	switch kind {
	case KindHero:
		return &HeroContent{}
	case KindFeatures:
		return &FeaturesContent{}
	case KindTestimonials:
		return &TestimonialsContent{}
	case KindFAQ:
		return &FAQContent{}
	case KindCTA:
		return &CTAContent{}
	}
	return GenericContent{}
}

// DecodeContent builds the record for kind from raw JSON. Decoding is
// tolerant: missing fields stay empty, numbers and booleans are accepted
// where text is expected, and unknown keys are ignored for typed kinds. A
// non-object value is only accepted for generic sections, where it is kept
// under the "content" key.
func DecodeContent(kind Kind, raw json.RawMessage) (Content, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return NewContent(kind), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	m, ok := v.(map[string]any)
	if !ok {
		if kind.Known() && kind != KindGeneric {
			return nil, fmt.Errorf("%w: %s content must be an object", ErrInvalidContent, kind)
		}
		return GenericContent{"content": normalize(v)}, nil
	}
	return FromMap(kind, m), nil
}

// FromMap builds the record for kind from an already decoded JSON object.
func FromMap(kind Kind, m map[string]any) Content {
	switch kind {
	case KindHero:
		return &HeroContent{
			Headline:          str(m, "headline"),
			Subheadline:       str(m, "subheadline"),
			Description:       str(m, "description"),
			PrimaryCTA:        str(m, "primaryCTA"),
			SecondaryCTA:      str(m, "secondaryCTA"),
			Badge:             str(m, "badge"),
			SocialProofNumber: str(m, "socialProofNumber"),
		}
	case KindFeatures:
		c := &FeaturesContent{Title: str(m, "title"), Subtitle: str(m, "subtitle")}
		c.SetItems("features", items(m["features"], "title", "description"))
		return c
	case KindTestimonials:
		c := &TestimonialsContent{Title: str(m, "title"), Subtitle: str(m, "subtitle")}
		list := items(m["testimonials"], "text", "author", "role")
		for _, it := range list {
			if it["author"] == "" {
				it["author"] = it["name"]
			}
		}
		c.SetItems("testimonials", list)
		return c
	case KindFAQ:
		c := &FAQContent{Title: str(m, "title"), Subtitle: str(m, "subtitle")}
		c.SetItems("faqs", items(m["faqs"], "question", "answer"))
		return c
	case KindCTA:
		return &CTAContent{
			Headline:     str(m, "headline"),
			Description:  str(m, "description"),
			PrimaryCTA:   str(m, "primaryCTA"),
			SecondaryCTA: str(m, "secondaryCTA"),
		}
	}
	return GenericContent(normalize(m).(map[string]any))
}

// normalize converts json.Number values into float64 or int64 so generic
// content marshals back exactly like plain decoded JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalize(vv)
		}
		return out
	}
	return v
}

func str(m map[string]any, key string) string {
	return scalar(m[key])
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// items decodes a list of objects. A bare string element fills the first
// field, which keeps lists like ["Fast", "Cheap"] usable.
func items(v any, fields ...string) []Item {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Item, 0, len(list))
	for _, el := range list {
		it := Item{}
		switch e := el.(type) {
		case map[string]any:
			for _, f := range fields {
				it[f] = str(e, f)
			}
			if _, ok := e["name"]; ok {
				it["name"] = str(e, "name")
			}
		case nil:
			continue
		default:
			it[fields[0]] = scalar(e)
		}
		out = append(out, it)
	}
	return out
}
