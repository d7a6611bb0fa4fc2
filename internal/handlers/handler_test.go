// handler_test.go provides shared test infrastructure for the API handler
// tests. Everything runs in memory against a scripted AI provider.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pagesmith/internal/ai"
	"pagesmith/internal/cache"
	"pagesmith/internal/editor"
	"pagesmith/internal/engine"
	"pagesmith/internal/export"
	"pagesmith/internal/generator"
	"pagesmith/internal/metrics"
	"pagesmith/internal/models"
	"pagesmith/internal/store"
)

const samplePage = `{
  "title": "Bean & Brew",
  "description": "Artisan coffee, roasted weekly.",
  "colorScheme": {"primary": "#7c2d12", "secondary": "#a16207", "accent": "#65a30d"},
  "sections": [
    {"id": "hero", "name": "Hero Section", "enabled": true, "content": {"headline": "Coffee worth waking up for", "description": "Roasted to order."}},
    {"id": "features", "name": "Why us", "kind": "features", "enabled": false, "content": {"title": "Why Bean & Brew", "features": [{"title": "Fresh", "description": "Roasted weekly"}]}},
    {"id": "cta", "name": "Call to Action", "enabled": true, "content": {"headline": "Order today"}}
  ]
}`

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
	calls    int
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return m.response, m.err
}

// recordingLog implements ActivityLogger and ActivityReader in memory.
type recordingLog struct {
	mu      sync.Mutex
	entries []store.ActivityEntry
}

func (l *recordingLog) Log(_ context.Context, e store.ActivityEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.ID = int64(len(l.entries) + 1)
	e.CreatedAt = time.Now()
	l.entries = append(l.entries, e)
}

func (l *recordingLog) RecentEntries(_ context.Context, limit int) ([]store.ActivityEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]store.ActivityEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *recordingLog) ForDraft(ctx context.Context, id uuid.UUID, limit int) ([]store.ActivityEntry, error) {
	all, _ := l.RecentEntries(ctx, 0)
	var out []store.ActivityEntry
	for _, e := range all {
		if e.DraftID == id {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *recordingLog) actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Action
	}
	return out
}

type testEnv struct {
	router   chi.Router
	pages    *Pages
	provider *mockAIProvider
	registry *ai.Registry
	drafts   *cache.MemoryDrafts
	exports  *cache.MemoryExports
	activity *recordingLog
	metrics  *metrics.Metrics
}

// newTestEnv wires the page handlers on a chi router the same way the
// application router does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	eng, err := engine.New()
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	exp, err := export.New()
	if err != nil {
		t.Fatalf("export.New: %v", err)
	}

	provider := &mockAIProvider{name: "mock", response: samplePage}
	registry := ai.NewRegistry("mock", nil)
	registry.Register("mock", provider)

	ed := editor.New(eng)
	env := &testEnv{
		provider: provider,
		registry: registry,
		drafts:   cache.NewMemoryDrafts(time.Hour),
		exports:  cache.NewMemoryExports(time.Minute),
		activity: &recordingLog{},
		metrics:  metrics.New(),
	}
	env.pages = NewPages(Deps{
		Drafts:    env.drafts,
		Exports:   env.exports,
		Generator: generator.New(registry, ed, generator.WithModerator(registry), generator.WithTimeout(time.Second)),
		Editor:    ed,
		Exporter:  exp,
		Activity:  env.activity,
		Metrics:   env.metrics,
		BaseURL:   "https://pages.example.com",
	})

	r := chi.NewRouter()
	p := env.pages
	r.Post("/api/pages", p.Create)
	r.Route("/api/pages/{draftID}", func(r chi.Router) {
		r.Get("/", p.Get)
		r.Delete("/", p.Discard)
		r.Put("/meta", p.UpdateMeta)
		r.Put("/colors", p.SetColors)
		r.Post("/colors/preset", p.ApplyPreset)
		r.Post("/sections", p.AddSection)
		r.Post("/sections/move", p.MoveSection)
		r.Post("/sections/{sectionID}/toggle", p.ToggleSection)
		r.Put("/sections/{sectionID}/content", p.UpdateContent)
		r.Put("/sections/{sectionID}/name", p.RenameSection)
		r.Post("/sections/{sectionID}/duplicate", p.DuplicateSection)
		r.Delete("/sections/{sectionID}", p.DeleteSection)
		r.Post("/sections/{sectionID}/items/{list}", p.InsertItem)
		r.Patch("/sections/{sectionID}/items/{list}/{index}", p.UpdateItem)
		r.Delete("/sections/{sectionID}/items/{list}/{index}", p.RemoveItem)
		r.Get("/preview", p.Preview)
		r.Get("/export/{format}", p.Export)
		r.Post("/publish/{format}", p.Publish)
		r.Get("/share", p.Share)
		r.Get("/share/qr.png", p.ShareQR)
	})
	providers := NewProviders(registry)
	r.Get("/api/ai/providers", providers.Status)
	r.Put("/api/ai/provider", providers.Switch)
	r.Get("/api/activity", NewActivity(env.activity).List)
	env.router = r
	return env
}

// do sends a request with an optional JSON body.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// createDraft generates the sample page and returns the new draft.
func (e *testEnv) createDraft(t *testing.T) *models.Draft {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/pages", map[string]string{"prompt": "a coffee roaster"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rr.Code, rr.Body.String())
	}
	var resp draftResponse
	decodeBody(t, rr, &resp)
	return resp.Draft
}

type testMutation struct {
	Draft  *models.Draft `json:"draft"`
	Notice struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		SectionID string `json:"section_id"`
	} `json:"notice"`
	Error string `json:"error"`
}

// mutate sends an editing request and decodes the mutation response.
func (e *testEnv) mutate(t *testing.T, method, path string, body any, wantStatus int) testMutation {
	t.Helper()
	rr := e.do(t, method, path, body)
	if rr.Code != wantStatus {
		t.Fatalf("%s %s: status %d, want %d; body %s", method, path, rr.Code, wantStatus, rr.Body.String())
	}
	var m testMutation
	decodeBody(t, rr, &m)
	return m
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v; body %q", err, rr.Body.String())
	}
}

func sectionIDs(d *models.Draft) []string {
	return d.Page.IDs()
}
