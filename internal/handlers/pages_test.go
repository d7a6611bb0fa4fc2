package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)

	if d.Revision != 1 || d.Provider != "mock" || d.Prompt != "a coffee roaster" {
		t.Errorf("draft = %+v", d)
	}
	if got := strings.Join(sectionIDs(d), ","); got != "hero,features,cta" {
		t.Errorf("sections = %s", got)
	}
	for _, s := range d.Page.Sections {
		if s.Markup == "" {
			t.Errorf("section %s has no markup", s.ID)
		}
	}

	rr := env.do(t, http.MethodGet, "/api/pages/"+d.ID.String(), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: status %d", rr.Code)
	}
	var got draftResponse
	decodeBody(t, rr, &got)
	if got.Draft.ID != d.ID || got.Draft.Page.Title != "Bean & Brew" {
		t.Errorf("get returned %+v", got.Draft)
	}

	if acts := env.activity.actions(); len(acts) != 1 || acts[0] != "generate" {
		t.Errorf("activity = %v", acts)
	}
}

func TestCreateFailures(t *testing.T) {
	tests := []struct {
		name       string
		prompt     string
		response   string
		err        error
		wantStatus int
		wantReason string
	}{
		{"empty prompt", "   ", samplePage, nil, http.StatusBadRequest, "prompt"},
		{"prompt too long", strings.Repeat("a", 501), samplePage, nil, http.StatusBadRequest, "prompt"},
		{"provider error", "coffee", "", errors.New("upstream 500"), http.StatusBadGateway, "provider"},
		{"not json", "coffee", "Sure! Here is your page.", nil, http.StatusBadGateway, "schema"},
		{"no sections", "coffee", `{"title": "x", "sections": []}`, nil, http.StatusBadGateway, "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.provider.response = tt.response
			env.provider.err = tt.err

			rr := env.do(t, http.MethodPost, "/api/pages", map[string]string{"prompt": tt.prompt})
			if rr.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d; body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			var body errorBody
			decodeBody(t, rr, &body)
			if body.Reason != tt.wantReason || body.Error == "" {
				t.Errorf("body = %+v", body)
			}
			if env.drafts.Len() != 0 {
				t.Error("a failed generation must not create a draft")
			}
		})
	}
}

func TestCreateBadBody(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{"prompt":`, `["coffee"]`, ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/pages", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status %d, want 400", body, rr.Code)
		}
	}
	if env.provider.calls != 0 {
		t.Error("provider should not be called for a bad request")
	}
}

func TestDraftNotFound(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name, path string
		want       int
	}{
		{"unknown id", "/api/pages/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", "/api/pages/not-a-uuid", http.StatusBadRequest},
		{"unknown id preview", "/api/pages/" + uuid.NewString() + "/preview", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := env.do(t, http.MethodGet, tt.path, nil); rr.Code != tt.want {
				t.Errorf("status %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	path := "/api/pages/" + d.ID.String()

	env.do(t, http.MethodGet, path+"/export/html", nil)

	if rr := env.do(t, http.MethodDelete, path, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("discard: status %d", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, path, nil); rr.Code != http.StatusNotFound {
		t.Errorf("get after discard: status %d", rr.Code)
	}
	if rr := env.do(t, http.MethodDelete, path, nil); rr.Code != http.StatusNotFound {
		t.Errorf("second discard: status %d", rr.Code)
	}
	if _, ok := env.exports.Get(t.Context(), d.ID, 1, "html"); ok {
		t.Error("discard should drop cached artifacts")
	}
}

func TestConcurrentEditsAreSerialized(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	path := "/api/pages/" + d.ID.String() + "/sections/hero/toggle"

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.do(t, http.MethodPost, path, nil)
		}()
	}
	wg.Wait()

	got, err := env.drafts.Get(t.Context(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Revision != 1+n {
		t.Errorf("revision = %d, want %d (lost updates)", got.Revision, 1+n)
	}
	// An even number of toggles restores the original state.
	if !got.Page.Find("hero").Enabled {
		t.Error("hero should be enabled after an even number of toggles")
	}
	if env.pages.locks.len() != 0 {
		t.Errorf("%d draft locks leaked", env.pages.locks.len())
	}
}

func TestGenerationMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.createDraft(t)
	env.provider.err = errors.New("down")
	env.do(t, http.MethodPost, "/api/pages", map[string]string{"prompt": "coffee"})

	out := gather(t, env)
	for _, want := range []string{
		`pagesmith_generations_total{outcome="success",provider="mock"} 1`,
		`pagesmith_generations_total{outcome="provider",provider="mock"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func gather(t *testing.T, env *testEnv) string {
	t.Helper()
	rr := httptest.NewRecorder()
	env.metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rr.Body.String()
}
