// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Kind identifies which content schema and render template a section uses.
type Kind string

const (
	KindHero         Kind = "hero"
	KindFeatures     Kind = "features"
	KindTestimonials Kind = "testimonials"
	KindFAQ          Kind = "faq"
	KindCTA          Kind = "cta"
	KindGeneric      Kind = "generic"
)

// Kinds lists every known section kind in their canonical order.
var Kinds = []Kind{KindHero, KindFeatures, KindTestimonials, KindFAQ, KindCTA, KindGeneric}

// ParseKind converts a user-supplied kind name into a Kind. Singular forms
// ("feature", "testimonial") are accepted. The second return value is false
// when the name matches no known kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hero":
		return KindHero, true
	case "features", "feature":
		return KindFeatures, true
	case "testimonials", "testimonial":
		return KindTestimonials, true
	case "faq", "faqs":
		return KindFAQ, true
	case "cta", "call-to-action", "call to action":
		return KindCTA, true
	case "generic", "custom":
		return KindGeneric, true
	}
	return "", false
}

// InferKind derives a kind from a section's display name by case-insensitive
// substring matching, checked in the order hero, feature, testimonial, faq,
// cta. Anything else is generic. It is only consulted when a section is
// created; renames never change a section's kind.
func InferKind(name string) Kind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "hero"):
		return KindHero
	case strings.Contains(n, "feature"):
		return KindFeatures
	case strings.Contains(n, "testimonial"):
		return KindTestimonials
	case strings.Contains(n, "faq"):
		return KindFAQ
	case strings.Contains(n, "cta"),
		strings.Contains(n, "call to action"),
		strings.Contains(n, "call-to-action"):
		return KindCTA
	}
	return KindGeneric
}

// Known reports whether k is one of the closed set of kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
