package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"pagesmith/internal/engine"
	"pagesmith/internal/models"
)

func newExporter(t *testing.T) *Exporter {
	t.Helper()
	x, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return x
}

// compiledPage builds [hero(on), features(off), cta(on)] with markup from
// the real renderer.
func compiledPage(t *testing.T) *models.Page {
	t.Helper()
	eng, err := engine.New()
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	p := &models.Page{
		Title:       "Bean & Brew",
		Description: `Coffee "roasted" <daily>`,
		ColorScheme: models.ColorScheme{Primary: "#ef4444", Secondary: "#f97316", Accent: "#eab308"},
		Sections: []models.Section{
			{ID: "hero", Kind: models.KindHero, Name: "Hero", Enabled: true, Content: &models.HeroContent{Headline: "Fresh", Subheadline: "Every day", Description: "Roasted locally"}},
			{ID: "features", Kind: models.KindFeatures, Name: "Features", Enabled: false, Content: &models.FeaturesContent{Features: []models.Feature{{Title: "Organic", Description: "Beans"}}}},
			{ID: "cta", Kind: models.KindCTA, Name: "CTA", Enabled: true, Content: &models.CTAContent{Headline: "Order now"}},
		},
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		s.Markup = eng.Render(s.Kind, s.Content, p.ColorScheme)
	}
	return p
}

// TestDocumentEndToEnd verifies that only enabled sections reach the
// document, in page order.
func TestDocumentEndToEnd(t *testing.T) {
	p := compiledPage(t)
	art, err := newExporter(t).Document(p)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(art.Body))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	sections := doc.Find("body > section")
	if sections.Length() != 2 {
		t.Fatalf("found %d sections, want 2", sections.Length())
	}
	for i, want := range []string{"hero", "cta"} {
		if got, _ := sections.Eq(i).Attr("data-section-kind"); got != want {
			t.Errorf("section %d kind = %q, want %q", i, got, want)
		}
	}
	if strings.Contains(string(art.Body), "Organic") {
		t.Error("disabled section leaked into export")
	}
	if !strings.Contains(string(art.Body), p.Sections[0].Markup) {
		t.Error("section markup not embedded verbatim")
	}
	if got := doc.Find("title").Text(); got != "Bean & Brew" {
		t.Errorf("title = %q", got)
	}
	if got, _ := doc.Find(`meta[name="description"]`).Attr("content"); got != p.Description {
		t.Errorf("description = %q, want %q", got, p.Description)
	}
	if art.Filename != "bean-brew.html" {
		t.Errorf("Filename = %q", art.Filename)
	}
}

func TestDocumentShell(t *testing.T) {
	art, err := newExporter(t).Document(compiledPage(t))
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	body := string(art.Body)
	for _, want := range []string{
		"https://cdn.tailwindcss.com",
		"--primary: #ef4444;",
		"--accent: #eab308;",
		"primary: '#ef4444'",
		"threshold: 0.1",
		"rootMargin: '0px 0px -50px 0px'",
		"family=Inter",
		".bg-grid-slate-100",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocumentEscapesMetadata(t *testing.T) {
	p := &models.Page{
		Title:       "</title><script>alert(1)</script>",
		Description: `"><script>alert(2)</script>`,
		ColorScheme: models.ColorScheme{Primary: "'; alert(3); '", Secondary: "#000", Accent: "#fff"},
	}
	art, err := newExporter(t).Document(p)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	body := string(art.Body)
	if strings.Contains(body, "<script>alert") {
		t.Errorf("metadata injected raw script:\n%s", body)
	}
	if strings.Contains(body, "alert(3)") {
		t.Error("invalid colour reached the document")
	}
}

// TestExportIdempotent verifies byte-identical output across repeated exports.
func TestExportIdempotent(t *testing.T) {
	x := newExporter(t)
	p := compiledPage(t)
	for _, f := range Formats {
		first, err := x.Build(p, f)
		if err != nil {
			t.Fatalf("Build(%s): %v", f, err)
		}
		second, err := x.Build(p, f)
		if err != nil {
			t.Fatalf("Build(%s): %v", f, err)
		}
		if !bytes.Equal(first.Body, second.Body) {
			t.Errorf("%s export not idempotent", f)
		}
	}
}

func TestComponent(t *testing.T) {
	p := compiledPage(t)
	art := Component(p)
	body := string(art.Body)

	if art.Filename != "BeanBrew.tsx" {
		t.Errorf("Filename = %q", art.Filename)
	}
	for _, want := range []string{
		"import React from 'react'",
		"interface BeanBrewProps {",
		"const BeanBrew: React.FC<BeanBrewProps> = ({ className = '' }) => {",
		"{/* Hero Section */}",
		"{/* CTA Section */}",
		"export default BeanBrew",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("component missing %q", want)
		}
	}
	if strings.Contains(body, "Features Section") {
		t.Error("disabled section leaked into component")
	}
	if n := strings.Count(body, "dangerouslySetInnerHTML"); n != 2 {
		t.Errorf("found %d injected sections, want 2", n)
	}
	if strings.Index(body, "Hero Section") > strings.Index(body, "CTA Section") {
		t.Error("sections out of order")
	}
}

// TestComponentEscaping checks that template-literal metacharacters in the
// markup cannot terminate the literal or start an interpolation.
func TestComponentEscaping(t *testing.T) {
	p := &models.Page{
		Title: "Escapes",
		Sections: []models.Section{{
			ID: "g", Kind: models.KindGeneric, Name: "Odd */ name", Enabled: true,
			Markup: "<p>`tick` ${inject} C:\\path</p>",
		}},
	}
	body := string(Component(p).Body)

	want := "<p>\\`tick\\` \\${inject} C:\\\\path</p>"
	if !strings.Contains(body, want) {
		t.Errorf("escaped markup missing, want %q in:\n%s", want, body)
	}
	if strings.Contains(body, "Odd */ name") {
		t.Error("section name closed the JSX comment")
	}
}

func TestFilenames(t *testing.T) {
	tests := []struct {
		title     string
		document  string
		component string
	}{
		{title: "CloudSync Pro", document: "cloudsync-pro.html", component: "CloudSyncPro.tsx"},
		{title: "Bean & Brew — Roasters", document: "bean-brew-roasters.html", component: "BeanBrewRoasters.tsx"},
		{title: "", document: "landing-page.html", component: "LandingPage.tsx"},
		{title: "!!!", document: "landing-page.html", component: "LandingPage.tsx"},
		{title: "24/7 Support", document: "247-support.html", component: "Page247Support.tsx"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := DocumentFilename(tt.title); got != tt.document {
				t.Errorf("DocumentFilename = %q, want %q", got, tt.document)
			}
			if got := ComponentFilename(tt.title); got != tt.component {
				t.Errorf("ComponentFilename = %q, want %q", got, tt.component)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{in: "html", want: FormatHTML},
		{in: "Document", want: FormatHTML},
		{in: "react", want: FormatReact},
		{in: "tsx", want: FormatReact},
		{in: "pdf", err: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) err = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if _, err := newExporter(t).Build(&models.Page{}, "pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Build(pdf) err = %v", err)
	}
}
