// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"pagesmith/internal/models"
	"pagesmith/internal/schema"
)

// Preset names with special meaning for ApplyPreset.
const (
	PresetDefault = "default"
	PresetRandom  = "random"
)

// UpdateMeta sets the page title and description.
func (e *Editor) UpdateMeta(p *models.Page, title, description string) Outcome {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == p.Title && description == p.Description {
		return noop("Page details unchanged")
	}
	p.Title = title
	p.Description = description
	return e.done(p, "meta", applied("Page details updated", ""))
}

// SetColorScheme validates and applies a palette, then re-renders every
// section so no markup carries the old colours.
func (e *Editor) SetColorScheme(p *models.Page, scheme models.ColorScheme) Outcome {
	scheme = models.ColorScheme{
		Primary:   strings.TrimSpace(scheme.Primary),
		Secondary: strings.TrimSpace(scheme.Secondary),
		Accent:    strings.TrimSpace(scheme.Accent),
	}
	if err := scheme.Validate(); err != nil {
		return e.violation("colors", err)
	}
	if scheme == p.ColorScheme {
		return noop("Colors unchanged")
	}
	p.ColorScheme = scheme
	e.Compile(p)
	return e.done(p, "colors", applied("Colors updated", ""))
}

// ApplyPreset applies a named colour preset. "default" restores the
// default palette and "random" picks one of the presets.
func (e *Editor) ApplyPreset(p *models.Page, name string) Outcome {
	name = strings.ToLower(strings.TrimSpace(name))
	var scheme models.ColorScheme
	switch name {
	case PresetDefault, "reset":
		scheme = models.DefaultColorScheme
	case PresetRandom:
		names := schema.PresetNames()
		scheme, _ = schema.Preset(names[rand.IntN(len(names))])
	default:
		var ok bool
		scheme, ok = schema.Preset(name)
		if !ok {
			return e.violation("preset", fmt.Errorf("%w: %q", ErrUnknownPreset, name))
		}
	}
	return e.SetColorScheme(p, scheme)
}
