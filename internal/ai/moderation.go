// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names (empty when safe)
}

// Moderator checks user prompts for policy violations before they reach a
// generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// endpointModerator calls an OpenAI-style /moderations endpoint. OpenAI's
// is free; Mistral's has the same shape but no top-level "flagged" field.
type endpointModerator struct {
	label        string
	model        string
	url          string
	apiKey       string
	client       *http.Client
	trustFlagged bool
}

func newOpenAIModerator(apiKey, baseURL string) *endpointModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &endpointModerator{
		label:        "openai moderation",
		model:        "omni-moderation-latest",
		url:          baseURL + "/moderations",
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 15 * time.Second},
		trustFlagged: true,
	}
}

// newMistralModerator takes the API root, not the /v1 chat base URL.
func newMistralModerator(apiKey, baseURL string) *endpointModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	return &endpointModerator{
		label:  "mistral moderation",
		model:  "mistral-moderation-latest",
		url:    baseURL + "/v1/moderations",
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *endpointModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	body := moderationRequest{Model: m.model, Input: text}
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}

	var result moderationResponse
	if err := postJSON(ctx, m.client, m.label, m.url, headers, body, &result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	r := result.Results[0]
	if m.trustFlagged && !r.Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	flagged := categoryNames(r.Categories)
	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// categoryNames turns "hate/threatening" into "hate (threatening)" and
// "self_harm" into "self harm", sorted.
func categoryNames(cats map[string]bool) []string {
	var out []string
	for cat, on := range cats {
		if !on {
			continue
		}
		display := cat
		if strings.Contains(display, "/") {
			display = strings.Replace(display, "/", " (", 1) + ")"
		}
		out = append(out, strings.ReplaceAll(display, "_", " "))
	}
	sort.Strings(out)
	return out
}

// fallbackModerator asks the primary moderator first and the secondary one
// when the primary fails (for example, an OpenAI project key without access
// to the moderation endpoint).
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return res, nil
	}
	slog.Warn("primary moderator failed, trying fallback", "error", err)
	res, err2 := m.secondary.CheckSafety(ctx, text)
	if err2 != nil {
		return nil, fmt.Errorf("moderation: primary: %v; fallback: %w", err, err2)
	}
	return res, nil
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}
