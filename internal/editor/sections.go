// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"fmt"
	"strings"

	"pagesmith/internal/models"
	"pagesmith/internal/schema"
)

// ToggleSection flips a section's enabled flag. Markup is unaffected.
func (e *Editor) ToggleSection(p *models.Page, id string) Outcome {
	s := p.Find(id)
	if s == nil {
		return e.violation("toggle", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	s.Enabled = !s.Enabled
	msg := "Section hidden"
	if s.Enabled {
		msg = "Section shown"
	}
	return e.done(p, "toggle", applied(msg, id))
}

// UpdateSectionContent replaces a section's content and re-renders it
// before returning. The content must be of the section's kind.
func (e *Editor) UpdateSectionContent(p *models.Page, id string, c models.Content) Outcome {
	s := p.Find(id)
	if s == nil {
		return e.violation("update", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	if c == nil || c.Kind() != s.Kind {
		got := models.Kind("nil")
		if c != nil {
			got = c.Kind()
		}
		return e.violation("update", fmt.Errorf("%w: section %q is %s, content is %s", ErrKindMismatch, id, s.Kind, got))
	}
	s.Content = c.Clone()
	s.Markup = e.Render(p, s)
	return e.done(p, "update", applied("Section updated", id))
}

// RenameSection changes the display name. The kind never changes.
func (e *Editor) RenameSection(p *models.Page, id, name string) Outcome {
	s := p.Find(id)
	if s == nil {
		return e.violation("rename", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return e.violation("rename", ErrEmptyName)
	}
	if name == s.Name {
		return noop("Section name unchanged")
	}
	s.Name = name
	return e.done(p, "rename", applied("Section renamed", id))
}

// DeleteSection removes a section permanently.
func (e *Editor) DeleteSection(p *models.Page, id string) Outcome {
	i := p.Index(id)
	if i < 0 {
		return e.violation("delete", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
	return e.done(p, "delete", applied("Section deleted", id))
}

// DuplicateSection inserts a deep copy right after the source. The copy
// gets a fresh id, a "(Copy)" name and the source's markup verbatim.
func (e *Editor) DuplicateSection(p *models.Page, id string) Outcome {
	i := p.Index(id)
	if i < 0 {
		return e.violation("duplicate", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	src := p.Sections[i]
	dup := src.Clone()
	dup.ID = uniqueID(p, func() string { return src.ID + "-" + shortSuffix(e.newID()) })
	dup.Name = src.Name + " (Copy)"

	p.Sections = append(p.Sections, models.Section{})
	copy(p.Sections[i+2:], p.Sections[i+1:])
	p.Sections[i+1] = dup
	return e.done(p, "duplicate", applied("Section duplicated", dup.ID))
}

func shortSuffix(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// AddSection appends a section of the given kind with starter content,
// rendered through the same path as every other section.
func (e *Editor) AddSection(p *models.Page, kind models.Kind) Outcome {
	if !kind.Known() {
		return e.violation("add", fmt.Errorf("%w: %q", ErrUnknownKind, kind))
	}
	name, content := schema.Starter(kind)
	s := models.Section{
		ID:      uniqueID(p, e.newID),
		Kind:    kind,
		Name:    name,
		Enabled: true,
		Content: content,
	}
	s.Markup = e.Render(p, &s)
	p.Sections = append(p.Sections, s)
	return e.done(p, "add", applied("Section added", s.ID))
}

// MoveSection removes the section at from and reinserts it at to.
func (e *Editor) MoveSection(p *models.Page, from, to int) Outcome {
	n := len(p.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return e.violation("move", fmt.Errorf("%w: move %d to %d, length %d", ErrIndexOutOfRange, from, to, n))
	}
	if from == to {
		return noop("Section already in place")
	}
	s := p.Sections[from]
	p.Sections = append(p.Sections[:from], p.Sections[from+1:]...)
	p.Sections = append(p.Sections, models.Section{})
	copy(p.Sections[to+1:], p.Sections[to:])
	p.Sections[to] = s
	return e.done(p, "move", applied("Section moved", s.ID))
}

// EditItems applies a collection edit (add, change or remove an item) to a
// section's content and re-renders it.
func (e *Editor) EditItems(p *models.Page, id string, edit schema.ItemEdit) Outcome {
	s := p.Find(id)
	if s == nil {
		return e.violation("items", fmt.Errorf("%w: %q", ErrSectionNotFound, id))
	}
	c, err := schema.ApplyEdit(s.Content, edit)
	if err != nil {
		return e.violation("items", err)
	}
	o := e.UpdateSectionContent(p, id, c)
	if o.Applied() {
		o.Message = itemMessage(edit.Op)
	}
	return o
}

func itemMessage(op schema.ItemOp) string {
	switch op {
	case schema.ItemInsert:
		return "Item added"
	case schema.ItemRemove:
		return "Item removed"
	}
	return "Item updated"
}
