// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"regexp"
	"strings"

	"pagesmith/internal/models"
)

// DefaultComponentName is used when the page title has no alphanumerics.
const DefaultComponentName = "LandingPage"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ComponentName strips every non-alphanumeric character from the title. A
// leading digit gets a "Page" prefix so the result is a valid identifier.
func ComponentName(title string) string {
	name := nonAlphanumeric.ReplaceAllString(title, "")
	switch {
	case name == "":
		return DefaultComponentName
	case name[0] >= '0' && name[0] <= '9':
		return "Page" + name
	}
	return name
}

// ComponentFilename derives the .tsx filename from a page title.
func ComponentFilename(title string) string {
	return ComponentName(title) + ".tsx"
}

// templateLiteral escapes markup for a JavaScript template literal. The
// replacer makes a single pass, so inserted backslashes are not re-escaped.
var templateLiteral = strings.NewReplacer(`\`, `\\`, "`", "\\`", "$", `\$`)

// jsxComment keeps a section name from terminating its JSX comment.
var jsxComment = strings.NewReplacer("*/", "* /", "\n", " ", "\r", " ")

// Component renders the React export: one function component whose body
// injects each enabled section's markup.
func Component(p *models.Page) Artifact {
	name := ComponentName(p.Title)

	var b strings.Builder
	b.WriteString("import React from 'react'\n\n")
	b.WriteString("interface " + name + "Props {\n")
	b.WriteString("  className?: string\n")
	b.WriteString("}\n\n")
	b.WriteString("const " + name + ": React.FC<" + name + "Props> = ({ className = '' }) => {\n")
	b.WriteString("  return (\n")
	b.WriteString("    <div className={`${className}`}>\n")
	for i, s := range p.EnabledSections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("      {/* " + jsxComment.Replace(s.Name) + " Section */}\n")
		b.WriteString("      <div dangerouslySetInnerHTML={{ __html: `" + templateLiteral.Replace(s.Markup) + "` }} />")
	}
	b.WriteString("\n    </div>\n")
	b.WriteString("  )\n")
	b.WriteString("}\n\n")
	b.WriteString("export default " + name + "\n")

	return Artifact{
		Format:      FormatReact,
		Filename:    ComponentFilename(p.Title),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}
}
