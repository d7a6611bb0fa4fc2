// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is the aggregate the editor works on: ordered sections plus the
// page-level metadata and palette.
type Page struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Sections    []Section   `json:"sections"`
	ColorScheme ColorScheme `json:"colorScheme"`
}

// Index returns the position of the section with the given id, or -1.
func (p *Page) Index(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer to the section with the given id, or nil.
func (p *Page) Find(id string) *Section {
	if i := p.Index(id); i >= 0 {
		return &p.Sections[i]
	}
	return nil
}

// EnabledSections returns the enabled sections in page order.
func (p *Page) EnabledSections() []Section {
	out := make([]Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// IDs returns the section ids in page order.
func (p *Page) IDs() []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	cp := *p
	cp.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		cp.Sections[i] = s.Clone()
	}
	return &cp
}

// Draft is a generated page held in the editing workspace. Revision is
// bumped on every applied mutation and keys the export cache.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	Provider  string    `json:"provider,omitempty"`
	Page      Page      `json:"page"`
	Revision  int       `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch records an applied mutation.
func (d *Draft) Touch() {
	d.Revision++
	d.UpdatedAt = time.Now().UTC()
}
