// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"pagesmith/internal/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type starter struct {
	Name    string         `yaml:"name"`
	Content map[string]any `yaml:"content"`
}

type preset struct {
	Name      string `yaml:"name"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
}

type defaultsFile struct {
	Sections map[string]starter           `yaml:"sections"`
	Items    map[string]map[string]string `yaml:"items"`
	Presets  []preset                     `yaml:"presets"`
}

var defaults = mustLoadDefaults(defaultsYAML)

func mustLoadDefaults(data []byte) defaultsFile {
	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		panic(fmt.Sprintf("schema: parsing embedded defaults: %v", err))
	}
	for _, k := range models.Kinds {
		if _, ok := f.Sections[string(k)]; !ok {
			panic(fmt.Sprintf("schema: embedded defaults missing starter for %q", k))
		}
	}
	return f
}

// Starter returns the canned content and display name for a new section of
// the given kind. Unknown kinds get the generic starter.
func Starter(kind models.Kind) (string, models.Content) {
	s, ok := defaults.Sections[string(kind)]
	if !ok {
		kind = models.KindGeneric
		s = defaults.Sections[string(kind)]
	}
	// Round-trip through JSON so the record goes through the same tolerant
	// decoding as generator output.
	raw, err := json.Marshal(s.Content)
	if err != nil {
		return s.Name, models.NewContent(kind)
	}
	c, err := models.DecodeContent(kind, raw)
	if err != nil {
		return s.Name, models.NewContent(kind)
	}
	return s.Name, c
}

// NewItem returns the starter entry appended by "add item" for a list.
func NewItem(list string) (models.Item, bool) {
	src, ok := defaults.Items[list]
	if !ok {
		return nil, false
	}
	it := make(models.Item, len(src))
	for k, v := range src {
		it[k] = v
	}
	return it, true
}

// Preset looks up a named colour preset (case-insensitive).
func Preset(name string) (models.ColorScheme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range defaults.Presets {
		if p.Name == name {
			return models.ColorScheme{Primary: p.Primary, Secondary: p.Secondary, Accent: p.Accent}, true
		}
	}
	return models.ColorScheme{}, false
}

// PresetNames lists the available colour presets in declaration order.
func PresetNames() []string {
	names := make([]string, len(defaults.Presets))
	for i, p := range defaults.Presets {
		names[i] = p.Name
	}
	return names
}
