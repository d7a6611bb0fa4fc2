// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives file- and URL-safe names from page titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace runs become a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// nonSlug matches anything outside the slug alphabet.
	nonSlug = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate lowercases s, turns whitespace into hyphens and strips every
// character outside [a-z0-9-].
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespace.ReplaceAllString(result, "-")
	result = nonSlug.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Or returns Generate(s), or fallback when the slug would be empty.
func Or(s, fallback string) string {
	if out := Generate(s); out != "" {
		return out
	}
	return fallback
}
