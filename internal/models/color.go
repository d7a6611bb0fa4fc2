// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidColor is returned when a colour value is not a CSS colour the
// renderer is willing to emit.
var ErrInvalidColor = errors.New("invalid color")

// Accepted colour syntaxes: hex (#rgb, #rgba, #rrggbb, #rrggbbaa), the
// rgb/rgba/hsl/hsla functional forms, and bare named colours.
var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[0-9.%]+(?:\s*[,/ ]\s*[0-9.%]+){2,3}\s*\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// ColorScheme is the page-level palette. Every section is rendered with it.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// DefaultColorScheme is used for new pages and when a palette is reset.
var DefaultColorScheme = ColorScheme{
	Primary:   "#6366f1",
	Secondary: "#8b5cf6",
	Accent:    "#06b6d4",
}

// IsValidColor reports whether v is safe to interpolate into CSS.
func IsValidColor(v string) bool {
	v = strings.TrimSpace(v)
	return hexColor.MatchString(v) || funcColor.MatchString(v) || namedColor.MatchString(v)
}

// Validate checks all three colours and reports the first invalid one.
func (c ColorScheme) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"accent", c.Accent},
	} {
		if !IsValidColor(f.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidColor, f.name, f.value)
		}
	}
	return nil
}

// Sanitize returns a copy of the scheme in which every invalid colour is
// replaced by the matching default.
func (c ColorScheme) Sanitize() ColorScheme {
	out := ColorScheme{
		Primary:   strings.TrimSpace(c.Primary),
		Secondary: strings.TrimSpace(c.Secondary),
		Accent:    strings.TrimSpace(c.Accent),
	}
	if !IsValidColor(out.Primary) {
		out.Primary = DefaultColorScheme.Primary
	}
	if !IsValidColor(out.Secondary) {
		out.Secondary = DefaultColorScheme.Secondary
	}
	if !IsValidColor(out.Accent) {
		out.Accent = DefaultColorScheme.Accent
	}
	return out
}
