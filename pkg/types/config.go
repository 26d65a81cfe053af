package types

import "time"

// AllLanguages is the language-list wildcard that disables pruning.
const AllLanguages = "ALL"

// EngineConfig holds the normalization settings applied to retrieved
// records. It is built once at the CLI boundary and treated as immutable
// for the duration of a run.
type EngineConfig struct {
	// Languages lists preferred 3-letter language codes in decreasing
	// preference (default eng, deu). A single "ALL" disables pruning.
	Languages []string `json:"languages" yaml:"languages"`

	// LanguageAttr is the object key that tags a language (default "language").
	LanguageAttr string `json:"language_attr,omitempty" yaml:"language_attr,omitempty"`

	// PreferredIDTypes lists identifier types moved to the front of each
	// record's identifier list (default doi).
	PreferredIDTypes []string `json:"preferred_id_types" yaml:"preferred_id_types"`

	// AuthorsAbbrev, when non-nil, abbreviates author forenames using the
	// pointed-to string as separator ("" abbreviates without separator).
	AuthorsAbbrev *string `json:"authors_abbrev,omitempty" yaml:"authors_abbrev,omitempty"`

	// AuthorsReverse renders author names as "last first".
	AuthorsReverse bool `json:"authors_reverse" yaml:"authors_reverse"`

	// AuthorsSep separates authors in the composed author list (default ", ").
	AuthorsSep string `json:"authors_sep,omitempty" yaml:"authors_sep,omitempty"`

	// ExcludeAuthors removes records with an author name containing any pattern.
	ExcludeAuthors []string `json:"exclude_authors,omitempty" yaml:"exclude_authors,omitempty"`

	// ExcludeTitles removes records with a title containing any pattern.
	ExcludeTitles []string `json:"exclude_titles,omitempty" yaml:"exclude_titles,omitempty"`
}

// DefaultEngineConfig returns the settings used when nothing is configured.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Languages:        []string{"eng", "deu"},
		LanguageAttr:     "language",
		PreferredIDTypes: []string{"doi"},
		AuthorsSep:       ", ",
	}
}

// HTTPConfig holds shared HTTP settings for the API client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "freidok/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClientConfig holds settings for the retrieval stage.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source is the API base URL or the path to a local JSON file.
	Source string `json:"source" yaml:"source"`

	// UserEmail is sent as X-User-Email so the API operators can reach
	// the requester.
	UserEmail string `json:"user_email,omitempty" yaml:"user_email,omitempty"`

	// ExtraHeaders are added to every request.
	ExtraHeaders map[string]string `json:"extra_headers,omitempty" yaml:"extra_headers,omitempty"`

	// DefaultMaxItems is applied as maxRows when a query sets none.
	DefaultMaxItems int `json:"default_max_items" yaml:"default_max_items"`

	// DryRun prints the request instead of sending it.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `json:"path" yaml:"path"`

	// TTL is how long a cached response stays valid. Zero means forever.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// OutputFormat selects the export format.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
	OutputJSON     OutputFormat = "json"
	OutputCSL      OutputFormat = "csl"
	OutputTemplate OutputFormat = "template"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Format selects the exporter.
	Format OutputFormat `json:"format" yaml:"format"`

	// Template is a user template file; it overrides Format.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Out is the output file; empty writes to stdout.
	Out string `json:"out,omitempty" yaml:"out,omitempty"`
}
