package handlers

import (
	"net/http"
	"strings"
	"testing"

	"pagesmith/internal/models"
)

func TestSectionOperations(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	base := "/api/pages/" + d.ID.String()

	m := env.mutate(t, http.MethodPost, base+"/sections/features/toggle", nil, http.StatusOK)
	if m.Notice.Status != "applied" || !m.Draft.Page.Find("features").Enabled || m.Draft.Revision != 2 {
		t.Errorf("toggle: %+v revision %d", m.Notice, m.Draft.Revision)
	}

	m = env.mutate(t, http.MethodPost, base+"/sections/move", map[string]int{"from": 2, "to": 0}, http.StatusOK)
	if got := strings.Join(sectionIDs(m.Draft), ","); got != "cta,hero,features" {
		t.Errorf("move: order = %s", got)
	}

	m = env.mutate(t, http.MethodPut, base+"/sections/hero/name", map[string]string{"name": "Welcome"}, http.StatusOK)
	if s := m.Draft.Page.Find("hero"); s.Name != "Welcome" || s.Kind != models.KindHero {
		t.Errorf("rename: %+v", s)
	}

	m = env.mutate(t, http.MethodPost, base+"/sections/hero/duplicate", nil, http.StatusOK)
	dupID := m.Notice.SectionID
	if dupID == "" || dupID == "hero" || m.Draft.Page.Index(dupID) != m.Draft.Page.Index("hero")+1 {
		t.Errorf("duplicate: id %q, order %v", dupID, sectionIDs(m.Draft))
	}
	if m.Draft.Page.Find(dupID).Markup != m.Draft.Page.Find("hero").Markup {
		t.Error("duplicate markup should equal the original")
	}

	m = env.mutate(t, http.MethodDelete, base+"/sections/"+dupID, nil, http.StatusOK)
	if m.Draft.Page.Find(dupID) != nil {
		t.Error("delete: section still present")
	}

	m = env.mutate(t, http.MethodPost, base+"/sections", map[string]string{"kind": "faq"}, http.StatusOK)
	added := m.Draft.Page.Find(m.Notice.SectionID)
	if added == nil || added.Kind != models.KindFAQ || !added.Enabled {
		t.Errorf("add: %+v", added)
	}

	if m.Draft.Revision != 7 {
		t.Errorf("revision = %d, want 7 after six applied operations", m.Draft.Revision)
	}

	stored, err := env.drafts.Get(t.Context(), d.ID)
	if err != nil || stored.Revision != 7 {
		t.Errorf("stored draft revision = %v, %v", stored, err)
	}
}

func TestUpdateContent(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	path := "/api/pages/" + d.ID.String() + "/sections/hero/content"

	m := env.mutate(t, http.MethodPut, path, map[string]any{
		"content": map[string]any{"headline": "Fresh <b>beans</b>", "primaryCTA": "Shop"},
	}, http.StatusOK)

	hero := m.Draft.Page.Find("hero")
	c, ok := hero.Content.(*models.HeroContent)
	if !ok || c.Headline != "Fresh <b>beans</b>" || c.PrimaryCTA != "Shop" {
		t.Fatalf("content = %#v", hero.Content)
	}
	if !strings.Contains(hero.Markup, "Fresh &lt;b&gt;beans&lt;/b&gt;") {
		t.Errorf("markup not re-rendered with escaped headline: %s", hero.Markup)
	}

	m = env.mutate(t, http.MethodPut, path, map[string]any{"content": "just a string"}, http.StatusUnprocessableEntity)
	if m.Notice.Status != "noop" || m.Draft.Revision != 2 {
		t.Errorf("invalid content: notice %+v, revision %d", m.Notice, m.Draft.Revision)
	}
}

func TestPageSettings(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	base := "/api/pages/" + d.ID.String()

	m := env.mutate(t, http.MethodPut, base+"/meta", map[string]string{"title": "  Bean Co  "}, http.StatusOK)
	if m.Draft.Page.Title != "Bean Co" || m.Draft.Page.Description != "Artisan coffee, roasted weekly." {
		t.Errorf("meta: %q / %q", m.Draft.Page.Title, m.Draft.Page.Description)
	}

	scheme := models.ColorScheme{Primary: "#111111", Secondary: "#222222", Accent: "#333333"}
	m = env.mutate(t, http.MethodPut, base+"/colors", scheme, http.StatusOK)
	if m.Draft.Page.ColorScheme != scheme {
		t.Errorf("colors = %+v", m.Draft.Page.ColorScheme)
	}
	for _, s := range m.Draft.Page.Sections {
		if strings.Contains(s.Markup, "#7c2d12") {
			t.Errorf("section %s still carries the old primary colour", s.ID)
		}
	}

	m = env.mutate(t, http.MethodPut, base+"/colors", models.ColorScheme{Primary: "red", Secondary: "#222222", Accent: "#333333"}, http.StatusUnprocessableEntity)
	if m.Draft.Page.ColorScheme != scheme {
		t.Error("an invalid palette must leave the page unchanged")
	}

	m = env.mutate(t, http.MethodPost, base+"/colors/preset", map[string]string{"name": "default"}, http.StatusOK)
	if m.Draft.Page.ColorScheme != models.DefaultColorScheme {
		t.Errorf("preset default = %+v", m.Draft.Page.ColorScheme)
	}

	m = env.mutate(t, http.MethodPost, base+"/colors/preset", map[string]string{"name": "default"}, http.StatusOK)
	if m.Notice.Status != "noop" {
		t.Errorf("re-applying the current palette: %+v", m.Notice)
	}

	env.mutate(t, http.MethodPost, base+"/colors/preset", map[string]string{"name": "neon"}, http.StatusUnprocessableEntity)
}

func TestRejectedOperations(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	base := "/api/pages/" + d.ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"toggle unknown", http.MethodPost, base + "/sections/nope/toggle", nil, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, base + "/sections/nope", nil, http.StatusNotFound},
		{"move out of range", http.MethodPost, base + "/sections/move", map[string]int{"from": 0, "to": 9}, http.StatusUnprocessableEntity},
		{"add unknown kind", http.MethodPost, base + "/sections", map[string]string{"kind": "carousel"}, http.StatusUnprocessableEntity},
		{"empty name", http.MethodPut, base + "/sections/hero/name", map[string]string{"name": "  "}, http.StatusUnprocessableEntity},
		{"content for unknown", http.MethodPut, base + "/sections/nope/content", map[string]any{"content": map[string]string{}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := env.mutate(t, tt.method, tt.path, tt.body, tt.want)
			if m.Notice.Status != "noop" || m.Error == "" {
				t.Errorf("notice = %+v, error %q", m.Notice, m.Error)
			}
			if m.Draft.Revision != 1 {
				t.Errorf("revision = %d, rejected operations must not bump it", m.Draft.Revision)
			}
		})
	}

	if rr := env.do(t, http.MethodPost, base+"/sections/move", "oops"); rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status %d", rr.Code)
	}
}

func TestNoopMoveKeepsRevision(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)

	m := env.mutate(t, http.MethodPost, "/api/pages/"+d.ID.String()+"/sections/move", map[string]int{"from": 1, "to": 1}, http.StatusOK)
	if m.Notice.Status != "noop" || m.Draft.Revision != 1 {
		t.Errorf("notice %+v, revision %d", m.Notice, m.Draft.Revision)
	}
	if acts := env.activity.actions(); len(acts) != 1 {
		t.Errorf("no-ops should not be logged: %v", acts)
	}
}

func TestItemEndpoints(t *testing.T) {
	env := newTestEnv(t)
	d := env.createDraft(t)
	base := "/api/pages/" + d.ID.String() + "/sections/features/items/features"

	features := func(m testMutation) []models.Feature {
		t.Helper()
		c, ok := m.Draft.Page.Find("features").Content.(*models.FeaturesContent)
		if !ok {
			t.Fatalf("features content = %#v", m.Draft.Page.Find("features").Content)
		}
		return c.Features
	}

	m := env.mutate(t, http.MethodPost, base, nil, http.StatusOK)
	if got := features(m); len(got) != 2 || got[1].Title == "" {
		t.Errorf("append starter: %+v", got)
	}

	m = env.mutate(t, http.MethodPost, base, map[string]any{
		"index": 0,
		"item":  map[string]string{"title": "Local", "description": "Roasted in town"},
	}, http.StatusOK)
	if got := features(m); len(got) != 3 || got[0].Title != "Local" {
		t.Errorf("insert at 0: %+v", got)
	}

	m = env.mutate(t, http.MethodPatch, base+"/1", map[string]string{"field": "title", "value": "Always fresh"}, http.StatusOK)
	if got := features(m); got[1].Title != "Always fresh" {
		t.Errorf("update: %+v", got)
	}
	if !strings.Contains(m.Draft.Page.Find("features").Markup, "Always fresh") {
		t.Error("markup not re-rendered after item update")
	}

	m = env.mutate(t, http.MethodDelete, base+"/0", nil, http.StatusOK)
	if got := features(m); len(got) != 2 || got[0].Title != "Always fresh" {
		t.Errorf("remove: %+v", got)
	}

	env.mutate(t, http.MethodDelete, base+"/9", nil, http.StatusUnprocessableEntity)
	env.mutate(t, http.MethodPatch, base+"/0", map[string]string{"field": "colour", "value": "x"}, http.StatusUnprocessableEntity)
	env.mutate(t, http.MethodPost, "/api/pages/"+d.ID.String()+"/sections/features/items/plans", nil, http.StatusUnprocessableEntity)

	if rr := env.do(t, http.MethodDelete, base+"/first", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index: status %d", rr.Code)
	}
}
