// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"
)

// systemPrompt describes the JSON object the model must return. Section
// content shapes mirror the models package records.
const systemPrompt = `You are an expert conversion copywriter and web designer.
You write complete, professional landing page structures as a single JSON object.

CRITICAL RULES:
1. Output ONLY the JSON object. No explanations, no markdown code fences.
2. Content must be specific to the business or industry in the request.
3. Copy should be professional, conversion-focused, realistic and emotionally engaging.
4. Choose an elegant colour scheme with hex colours that fits the business type.

The object has this shape:
{
  "title": string,
  "description": string,
  "colorScheme": {"primary": "#rrggbb", "secondary": "#rrggbb", "accent": "#rrggbb"},
  "sections": [
    {"id": string, "name": string, "kind": string, "enabled": true, "content": object}
  ]
}

REQUIRED SECTIONS, in this order:
1. kind "hero", content: {"headline", "subheadline", "description", "primaryCTA", "secondaryCTA", "badge", "socialProofNumber"}
2. kind "features", content: {"title", "subtitle", "features": [6 x {"title", "description"}]}
3. kind "testimonials", content: {"title", "subtitle", "testimonials": [6 x {"text", "author", "role"}]}
4. kind "faq", content: {"title", "subtitle", "faqs": [8 x {"question", "answer"}]}
5. kind "cta", content: {"headline", "description", "primaryCTA", "secondaryCTA"}

Every content value is plain text. Do not put HTML in any field.
Section ids must be short, unique, lowercase strings (for example "hero", "features").`

// userPrompt wraps the user's request.
func userPrompt(prompt string) string {
	return fmt.Sprintf("Create a comprehensive, professional landing page structure for: %q", strings.TrimSpace(prompt))
}

// extractJSON strips markdown code fences and any chatter around the
// outermost JSON object.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if nl := strings.Index(response, "\n"); nl != -1 {
			response = response[nl+1:]
		}
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end < start {
		return strings.TrimSpace(response)
	}
	return response[start : end+1]
}
