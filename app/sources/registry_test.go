package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry.Count() == 0 {
		t.Fatal("Expected built-in sources to be non-empty")
	}

	for _, s := range registry.All() {
		if s.Name == "" {
			t.Error("Expected every source to have a name")
		}
		if s.URL == "" {
			t.Errorf("Expected source %s to have a URL", s.Name)
		}
		if s.Category == "" {
			t.Errorf("Expected source %s to have a category", s.Name)
		}
	}
}

func TestForFetchingOrdersByReliability(t *testing.T) {
	registry := &Registry{sources: []Source{
		{Name: "Low", URL: "https://low.test/rss", Reliability: 5},
		{Name: "High", URL: "https://high.test/rss", Reliability: 9},
		{Name: "Mid", URL: "https://mid.test/rss", Reliability: 7},
	}}

	fetched := registry.ForFetching(2)

	if len(fetched) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(fetched))
	}
	if fetched[0].Name != "High" {
		t.Errorf("Expected 'High' first, got '%s'", fetched[0].Name)
	}
	if fetched[1].Name != "Mid" {
		t.Errorf("Expected 'Mid' second, got '%s'", fetched[1].Name)
	}
}

func TestForFetchingStableForEqualReliability(t *testing.T) {
	registry := &Registry{sources: []Source{
		{Name: "A", URL: "https://a.test/rss", Reliability: 8},
		{Name: "B", URL: "https://b.test/rss", Reliability: 8},
	}}

	fetched := registry.ForFetching(0)

	if fetched[0].Name != "A" || fetched[1].Name != "B" {
		t.Errorf("Expected original order preserved for equal scores, got %s, %s",
			fetched[0].Name, fetched[1].Name)
	}
}

func TestByCategory(t *testing.T) {
	registry := NewRegistry()

	sports := registry.ByCategory("Sports")
	if len(sports) == 0 {
		t.Fatal("Expected at least one Sports source")
	}
	for _, s := range sports {
		if s.Category != "Sports" {
			t.Errorf("Expected category 'Sports', got '%s'", s.Category)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"rw", "rw"},
		{"", "en"},
		{"!!", "!!"},
	}

	for _, tt := range tests {
		if got := normalizeLanguage(tt.in); got != tt.want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRegistryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yml")

	content := `sources:
  - name: Test Feed
    url: https://test.example.org/rss
    language: en-GB
    category: Technology
    country: UK
    reliability: 9
    extract_content: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	registry, err := NewRegistryFromFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if registry.Count() != 1 {
		t.Fatalf("Expected 1 source, got %d", registry.Count())
	}

	s := registry.All()[0]
	if s.Name != "Test Feed" {
		t.Errorf("Expected name 'Test Feed', got '%s'", s.Name)
	}
	if s.Language != "en" {
		t.Errorf("Expected normalized language 'en', got '%s'", s.Language)
	}
	if !s.ExtractContent {
		t.Error("Expected extract_content to be true")
	}
}

func TestNewRegistryFromFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yml")

	if err := os.WriteFile(path, []byte("sources:\n  - url: https://x.test/rss\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewRegistryFromFile(path); err == nil {
		t.Error("Expected error for source missing a name")
	}

	if _, err := NewRegistryFromFile(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
