package sources

// Source describes a single RSS/Atom feed the fetcher pulls from.
// The list is fixed at process start; Reliability determines fetch
// priority when a run is capacity-limited.
type Source struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	Language       string `yaml:"language"`
	Category       string `yaml:"category"`
	Country        string `yaml:"country"`
	Reliability    int    `yaml:"reliability"`
	ExtractContent bool   `yaml:"extract_content"`
}
