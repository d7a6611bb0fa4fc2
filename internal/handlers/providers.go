// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// ProviderRegistry is the part of *ai.Registry the provider endpoints use.
type ProviderRegistry interface {
	ActiveName() string
	Available() []string
	SetActive(name string) error
}

// Providers exposes the AI provider status and runtime switching.
type Providers struct {
	registry ProviderRegistry
}

// NewProviders creates the provider handler group.
func NewProviders(registry ProviderRegistry) *Providers {
	return &Providers{registry: registry}
}

type providerStatus struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

func (p *Providers) status() providerStatus {
	return providerStatus{Active: p.registry.ActiveName(), Available: p.registry.Available()}
}

// Status lists the configured providers and the active one.
func (p *Providers) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.status())
}

type switchRequest struct {
	Name string `json:"name"`
}

// Switch changes the active provider.
func (p *Providers) Switch(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		writeError(w, http.StatusBadRequest, "No provider specified.")
		return
	}

	if err := p.registry.SetActive(name); err != nil {
		slog.Warn("failed to switch AI provider", "provider", name, "error", err)
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("Cannot switch to %q: provider not available (no API key configured).", name))
		return
	}

	slog.Info("ai provider switched", "provider", name)
	writeJSON(w, http.StatusOK, p.status())
}
