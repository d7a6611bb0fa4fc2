// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
)

// Section is one block of a page. Markup is a cache of the rendered
// content and is only ever written by the editor and the generator, which
// render it from Kind, Content and the page colour scheme.
type Section struct {
	ID      string
	Kind    Kind
	Name    string
	Enabled bool
	Content Content
	Markup  string
}

type sectionJSON struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	Name    string          `json:"name"`
	Enabled bool            `json:"enabled"`
	Content json.RawMessage `json:"content"`
	Markup  string          `json:"markup"`
}

// MarshalJSON encodes the section with its content record inline.
func (s Section) MarshalJSON() ([]byte, error) {
	content := s.Content
	if content == nil {
		content = NewContent(s.Kind)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encoding %s content: %w", s.Kind, err)
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Kind:    s.Kind,
		Name:    s.Name,
		Enabled: s.Enabled,
		Content: raw,
		Markup:  s.Markup,
	})
}

// UnmarshalJSON decodes a section, inferring the kind from the name when the
// kind field is missing.
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	kind, ok := ParseKind(string(aux.Kind))
	if !ok {
		kind = InferKind(aux.Name)
	}
	content, err := DecodeContent(kind, aux.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", aux.ID, err)
	}
	*s = Section{
		ID:      aux.ID,
		Kind:    kind,
		Name:    aux.Name,
		Enabled: aux.Enabled,
		Content: content,
		Markup:  aux.Markup,
	}
	return nil
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	if s.Content != nil {
		s.Content = s.Content.Clone()
	}
	return s
}
