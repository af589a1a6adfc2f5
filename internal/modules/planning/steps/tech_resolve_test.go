package steps

import (
	"context"
	"testing"

	"github.com/planweave/planweave-backend/internal/domain"
)

type fakeCatalog struct {
	rows    map[string]*domain.Technology
	lookups []string
}

func (f *fakeCatalog) FindByKey(ctx context.Context, key string) (*domain.Technology, error) {
	f.lookups = append(f.lookups, key)
	return f.rows[key], nil
}

func TestTechResolveBlankInput(t *testing.T) {
	deps := TechResolveDeps{Catalog: &fakeCatalog{}}
	if _, err := TechResolve(context.Background(), deps, "   "); err == nil {
		t.Fatalf("expected validation error for blank input")
	}
}

func TestTechResolveCatalogHit(t *testing.T) {
	cat := &fakeCatalog{rows: map[string]*domain.Technology{
		"react": {Key: "react", DisplayName: "React", Category: "Framework", Ecosystem: "Frontend"},
	}}
	desc, err := TechResolve(context.Background(), TechResolveDeps{Catalog: cat}, "React")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.IsFallback {
		t.Fatalf("expected catalog descriptor, got fallback")
	}
	if desc.Key != "react" || desc.DisplayName != "React" {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	// "React" misses, "react" hits; the slug is never tried.
	if len(cat.lookups) != 2 {
		t.Fatalf("expected 2 lookups, got %v", cat.lookups)
	}
}

func TestTechResolveFallbackSynthesis(t *testing.T) {
	desc, err := TechResolve(context.Background(), TechResolveDeps{Catalog: &fakeCatalog{}}, "Kotlin-Coroutines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !desc.IsFallback {
		t.Fatalf("expected fallback descriptor")
	}
	if desc.DisplayName != "Kotlin Coroutines" {
		t.Fatalf("expected display name %q, got %q", "Kotlin Coroutines", desc.DisplayName)
	}
	if desc.Category != "Framework" || desc.Ecosystem != "General" {
		t.Fatalf("expected default category/ecosystem, got %+v", desc)
	}
	if desc.Key != "kotlin-coroutines" {
		t.Fatalf("expected slug key, got %q", desc.Key)
	}
}

func TestTechResolveIdempotent(t *testing.T) {
	deps := TechResolveDeps{Catalog: &fakeCatalog{}}
	first, err := TechResolve(context.Background(), deps, "graph_ql  server")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := TechResolve(context.Background(), deps, "graph_ql  server")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("resolution not idempotent: %+v vs %+v", first, second)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kotlin Coroutines", "kotlin-coroutines"},
		{"  C++ / STL  ", "c-stl"},
		{"node.js", "node-js"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleizeFallsBackToRawInput(t *testing.T) {
	// Splitting "---" on separators leaves nothing, so the raw trimmed
	// input is used.
	desc, err := TechResolve(context.Background(), TechResolveDeps{Catalog: &fakeCatalog{}}, "---")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.DisplayName != "---" {
		t.Fatalf("expected raw input display name, got %q", desc.DisplayName)
	}
}
