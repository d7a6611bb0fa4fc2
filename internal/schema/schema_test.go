package schema

import (
	"errors"
	"strings"
	"testing"

	"pagesmith/internal/models"
)

// TestStarterEveryKind ensures every kind has starter content of the right
// record type and a non-empty display name.
func TestStarterEveryKind(t *testing.T) {
	for _, k := range models.Kinds {
		t.Run(string(k), func(t *testing.T) {
			name, c := Starter(k)
			if name == "" {
				t.Error("empty starter name")
			}
			if c == nil || c.Kind() != k {
				t.Fatalf("Starter(%q) content kind = %v", k, c)
			}
			if w := Validate(c); len(w) != 0 {
				t.Errorf("starter content has warnings: %v", w)
			}
		})
	}
}

func TestStarterUnknownKindIsGeneric(t *testing.T) {
	_, c := Starter("pricing")
	if c.Kind() != models.KindGeneric {
		t.Errorf("Starter(unknown) kind = %q, want generic", c.Kind())
	}
}

func TestStarterReturnsFreshCopies(t *testing.T) {
	_, a := Starter(models.KindFeatures)
	a.(*models.FeaturesContent).Features[0].Title = "mutated"
	_, b := Starter(models.KindFeatures)
	if b.(*models.FeaturesContent).Features[0].Title != "New Feature" {
		t.Error("starter content shared between calls")
	}
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		list  string
		field string
		want  string
	}{
		{list: "features", field: "title", want: "New Feature"},
		{list: "features", field: "description", want: "Feature description"},
		{list: "testimonials", field: "text", want: "Great product! Highly recommended."},
		{list: "testimonials", field: "author", want: "John Doe"},
		{list: "testimonials", field: "role", want: "CEO, Company"},
		{list: "faqs", field: "question", want: "New question?"},
		{list: "faqs", field: "answer", want: "Answer to the question."},
	}
	for _, tt := range tests {
		t.Run(tt.list+"."+tt.field, func(t *testing.T) {
			it, ok := NewItem(tt.list)
			if !ok {
				t.Fatalf("NewItem(%q) not found", tt.list)
			}
			if it[tt.field] != tt.want {
				t.Errorf("%s = %q, want %q", tt.field, it[tt.field], tt.want)
			}
		})
	}
	if _, ok := NewItem("plans"); ok {
		t.Error("NewItem(unknown) reported ok")
	}
}

func TestPresets(t *testing.T) {
	want := map[string]models.ColorScheme{
		"red":    {Primary: "#ef4444", Secondary: "#f97316", Accent: "#eab308"},
		"green":  {Primary: "#10b981", Secondary: "#059669", Accent: "#06b6d4"},
		"purple": {Primary: "#8b5cf6", Secondary: "#a855f7", Accent: "#ec4899"},
		"blue":   {Primary: "#3b82f6", Secondary: "#1d4ed8", Accent: "#06b6d4"},
		"orange": {Primary: "#f59e0b", Secondary: "#d97706", Accent: "#dc2626"},
	}
	if got := len(PresetNames()); got != len(want) {
		t.Fatalf("len(PresetNames()) = %d, want %d", got, len(want))
	}
	for name, scheme := range want {
		got, ok := Preset(strings.ToUpper(name))
		if !ok || got != scheme {
			t.Errorf("Preset(%q) = %+v, %v; want %+v", name, got, ok, scheme)
		}
	}
	if _, ok := Preset("teal"); ok {
		t.Error("Preset(teal) reported ok")
	}
}

func TestValidateReportsMissingRequired(t *testing.T) {
	c := &models.FeaturesContent{Features: []models.Feature{{Title: "A", Description: "a"}, {Title: " "}}}
	w := Validate(c)
	if len(w) != 2 {
		t.Fatalf("warnings = %v, want 2", w)
	}
	if w[0] != "features[1].title is required" {
		t.Errorf("warnings[0] = %q", w[0])
	}

	hero := Validate(&models.HeroContent{Headline: "x"})
	if len(hero) != 2 {
		t.Errorf("hero warnings = %v, want subheadline and description", hero)
	}
	if got := Validate(&models.CTAContent{}); len(got) != 0 {
		t.Errorf("cta warnings = %v, want none", got)
	}
}

func items(titles ...string) []models.Item {
	out := make([]models.Item, len(titles))
	for i, t := range titles {
		out[i] = models.Item{"title": t}
	}
	return out
}

func titles(items []models.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it["title"]
	}
	return strings.Join(parts, ",")
}

func TestListOps(t *testing.T) {
	base := items("A", "B", "C")

	tests := []struct {
		name    string
		run     func() ([]models.Item, error)
		want    string
		wantErr bool
	}{
		{name: "insert front", run: func() ([]models.Item, error) { return InsertAt(base, 0, models.Item{"title": "X"}) }, want: "X,A,B,C"},
		{name: "insert middle", run: func() ([]models.Item, error) { return InsertAt(base, 2, models.Item{"title": "X"}) }, want: "A,B,X,C"},
		{name: "append", run: func() ([]models.Item, error) { return InsertAt(base, -1, models.Item{"title": "X"}) }, want: "A,B,C,X"},
		{name: "insert past end", run: func() ([]models.Item, error) { return InsertAt(base, 4, nil) }, wantErr: true},
		{name: "remove middle shifts", run: func() ([]models.Item, error) { return RemoveAt(base, 1) }, want: "A,C"},
		{name: "remove last", run: func() ([]models.Item, error) { return RemoveAt(base, 2) }, want: "A,B"},
		{name: "remove negative", run: func() ([]models.Item, error) { return RemoveAt(base, -1) }, wantErr: true},
		{name: "remove empty", run: func() ([]models.Item, error) { return RemoveAt(nil, 0) }, wantErr: true},
		{name: "update", run: func() ([]models.Item, error) { return UpdateAt(base, 1, "title", "Z") }, want: "A,Z,C"},
		{name: "update out of range", run: func() ([]models.Item, error) { return UpdateAt(base, 3, "title", "Z") }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Errorf("err = %v, want ErrIndexOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if titles(got) != tt.want {
				t.Errorf("got %s, want %s", titles(got), tt.want)
			}
			if titles(base) != "A,B,C" {
				t.Errorf("input mutated: %s", titles(base))
			}
		})
	}
}

func TestApplyEdit(t *testing.T) {
	orig := &models.FAQContent{FAQs: []models.Question{{Question: "Q1", Answer: "A1"}}}

	added, err := ApplyEdit(orig, ItemEdit{List: "faqs", Op: ItemInsert, Index: -1})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	faqs := added.(*models.FAQContent).FAQs
	if len(faqs) != 2 || faqs[1].Question != "New question?" {
		t.Errorf("after insert = %+v", faqs)
	}
	if len(orig.FAQs) != 1 {
		t.Error("ApplyEdit modified its input")
	}

	updated, err := ApplyEdit(added, ItemEdit{List: "faqs", Op: ItemUpdate, Index: 1, Field: "answer", Value: "Yes."})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.(*models.FAQContent).FAQs[1]; got.Answer != "Yes." || got.Question != "New question?" {
		t.Errorf("after update = %+v", got)
	}

	removed, err := ApplyEdit(updated, ItemEdit{List: "faqs", Op: ItemRemove, Index: 0})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := removed.(*models.FAQContent).FAQs; len(got) != 1 || got[0].Answer != "Yes." {
		t.Errorf("after remove = %+v", got)
	}
}

func TestApplyEditRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name    string
		content models.Content
		edit    ItemEdit
	}{
		{name: "hero has no lists", content: &models.HeroContent{}, edit: ItemEdit{List: "features", Op: ItemInsert, Index: -1}},
		{name: "wrong list for kind", content: &models.FAQContent{}, edit: ItemEdit{List: "features", Op: ItemInsert, Index: -1}},
		{name: "unknown item field", content: &models.FeaturesContent{Features: []models.Feature{{}}}, edit: ItemEdit{List: "features", Op: ItemUpdate, Index: 0, Field: "icon"}},
		{name: "unknown field in inserted item", content: &models.FeaturesContent{}, edit: ItemEdit{List: "features", Op: ItemInsert, Index: -1, Item: models.Item{"price": "9"}}},
		{name: "generic", content: models.GenericContent{}, edit: ItemEdit{List: "items", Op: ItemRemove}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ApplyEdit(tt.content, tt.edit); !errors.Is(err, ErrUnknownField) {
				t.Errorf("err = %v, want ErrUnknownField", err)
			}
		})
	}
}
