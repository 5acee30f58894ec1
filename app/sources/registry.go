package sources

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Registry holds the fixed feed source list for a process. Sources are
// validated and language-normalized once at construction.
type Registry struct {
	sources []Source
}

func NewRegistry() *Registry {
	return &Registry{sources: normalize(defaultSources())}
}

// NewRegistryFromFile replaces the built-in corpus with sources loaded
// from a YAML file.
func NewRegistryFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	for i, s := range file.Sources {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("source at index %d is missing a name or URL", i)
		}
	}

	return &Registry{sources: normalize(file.Sources)}, nil
}

func normalize(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		s.Language = normalizeLanguage(s.Language)
		if s.Category == "" {
			s.Category = "General"
		}
		out = append(out, s)
	}
	return out
}

// normalizeLanguage reduces a language tag to its base form ("en-US" ->
// "en"). Unknown tags are kept as-is so regional outlets with uncommon
// codes still round-trip.
func normalizeLanguage(tag string) string {
	if tag == "" {
		return "en"
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		slog.Debug("Unrecognized language tag, keeping raw value", "tag", tag)
		return tag
	}
	base, _ := parsed.Base()
	return base.String()
}

func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) Count() int {
	return len(r.sources)
}

func (r *Registry) ByCategory(category string) []Source {
	var out []Source
	for _, s := range r.sources {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.sources {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ForFetching returns up to limit sources ordered by reliability, most
// reliable first. A limit of zero or less returns all sources.
func (r *Registry) ForFetching(limit int) []Source {
	sorted := r.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Reliability > sorted[j].Reliability
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}
