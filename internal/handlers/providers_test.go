package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestProviders(t *testing.T) {
	env := newTestEnv(t)
	env.registry.Register("backup", &mockAIProvider{name: "backup", response: samplePage})

	var status providerStatus
	decodeBody(t, env.do(t, http.MethodGet, "/api/ai/providers", nil), &status)
	if status.Active != "mock" || strings.Join(status.Available, ",") != "backup,mock" {
		t.Errorf("status = %+v", status)
	}

	rr := env.do(t, http.MethodPut, "/api/ai/provider", map[string]string{"name": " Backup "})
	if rr.Code != http.StatusOK {
		t.Fatalf("switch: status %d", rr.Code)
	}
	decodeBody(t, rr, &status)
	if status.Active != "backup" {
		t.Errorf("active = %q", status.Active)
	}

	d := env.createDraft(t)
	if d.Provider != "backup" {
		t.Errorf("draft provider = %q, want the switched provider", d.Provider)
	}

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown", map[string]string{"name": "openai"}, http.StatusUnprocessableEntity},
		{"empty", map[string]string{"name": ""}, http.StatusBadRequest},
		{"malformed", "openai", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := env.do(t, http.MethodPut, "/api/ai/provider", tt.body); rr.Code != tt.want {
				t.Errorf("status %d, want %d", rr.Code, tt.want)
			}
		})
	}
	if env.registry.ActiveName() != "backup" {
		t.Error("failed switches must keep the active provider")
	}
}
