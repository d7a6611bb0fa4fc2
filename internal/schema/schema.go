// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package schema declares the field set of every section kind and provides
// the item-collection operations the editor applies to section content.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"pagesmith/internal/models"
)

// Field describes one content field. List fields hold ordered items whose
// own fields are described by Item.
type Field struct {
	Name     string  `json:"name"`
	Required bool    `json:"required"`
	Item     []Field `json:"item,omitempty"`
}

// IsList reports whether the field is an ordered item collection.
func (f Field) IsList() bool { return len(f.Item) > 0 }

// Spec is the declared field set of a kind. Required marks what the
// generator contract demands; rendering tolerates every field being absent.
type Spec struct {
	Kind   models.Kind `json:"kind"`
	Fields []Field     `json:"fields"`
}

var specs = map[models.Kind]Spec{
	models.KindHero: {Kind: models.KindHero, Fields: []Field{
		{Name: "headline", Required: true},
		{Name: "subheadline", Required: true},
		{Name: "description", Required: true},
		{Name: "primaryCTA"},
		{Name: "secondaryCTA"},
		{Name: "badge"},
		{Name: "socialProofNumber"},
	}},
	models.KindFeatures: {Kind: models.KindFeatures, Fields: []Field{
		{Name: "title"},
		{Name: "subtitle"},
		{Name: "features", Item: []Field{
			{Name: "title", Required: true},
			{Name: "description", Required: true},
		}},
	}},
	models.KindTestimonials: {Kind: models.KindTestimonials, Fields: []Field{
		{Name: "title"},
		{Name: "subtitle"},
		{Name: "testimonials", Item: []Field{
			{Name: "text", Required: true},
			{Name: "author", Required: true},
			{Name: "role", Required: true},
		}},
	}},
	models.KindFAQ: {Kind: models.KindFAQ, Fields: []Field{
		{Name: "title"},
		{Name: "subtitle"},
		{Name: "faqs", Item: []Field{
			{Name: "question", Required: true},
			{Name: "answer", Required: true},
		}},
	}},
	models.KindCTA: {Kind: models.KindCTA, Fields: []Field{
		{Name: "headline"},
		{Name: "description"},
		{Name: "primaryCTA"},
		{Name: "secondaryCTA"},
	}},
	models.KindGeneric: {Kind: models.KindGeneric, Fields: []Field{
		{Name: "title"},
		{Name: "content"},
	}},
}

// For returns the field spec for a kind. Unknown kinds get the generic spec.
func For(kind models.Kind) Spec {
	if s, ok := specs[kind]; ok {
		return s
	}
	return specs[models.KindGeneric]
}

// List returns the list field with the given name.
func (s Spec) List(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name && f.IsList() {
			return f, true
		}
	}
	return Field{}, false
}

// Validate reports missing required fields as human-readable warnings.
// It never fails: the renderer substitutes defaults for anything missing.
func Validate(c models.Content) []string {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return []string{fmt.Sprintf("content could not be encoded: %v", err)}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return []string{fmt.Sprintf("content is not an object: %v", err)}
	}

	var warnings []string
	for _, f := range For(c.Kind()).Fields {
		if f.IsList() {
			list, _ := m[f.Name].([]any)
			for i, el := range list {
				item, _ := el.(map[string]any)
				for _, sub := range f.Item {
					if sub.Required && blank(item[sub.Name]) {
						warnings = append(warnings, fmt.Sprintf("%s[%d].%s is required", f.Name, i, sub.Name))
					}
				}
			}
			continue
		}
		if f.Required && blank(m[f.Name]) {
			warnings = append(warnings, fmt.Sprintf("%s is required", f.Name))
		}
	}
	return warnings
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
