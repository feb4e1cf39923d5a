// Package config loads ddg settings from a YAML file and validates them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kevin-rs/duckduckgo/internal/useragents"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Backends accepted by the backend setting.
const (
	BackendAuto   = "auto"
	BackendLite   = "lite"
	BackendImages = "images"
	BackendNews   = "news"
)

// Instant answer print formats.
const (
	FormatList     = "list"
	FormatDetailed = "detailed"
)

// Output encodings.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

var (
	validBackends     = []string{BackendAuto, BackendLite, BackendImages, BackendNews}
	validFormats      = []string{FormatList, FormatDetailed}
	validOutputs      = []string{OutputText, OutputJSON, OutputMarkdown}
	validProxySchemes = []string{"http", "https", "socks5", "socks5h"}
)

// Config holds every setting that is not the query itself.
type Config struct {
	UserAgent  string        `yaml:"user_agent"`
	Proxy      string        `yaml:"proxy"`
	Cookies    bool          `yaml:"cookies"`
	Region     string        `yaml:"region"`
	SafeSearch bool          `yaml:"safe_search"`
	Limit      int           `yaml:"limit"`
	Format     string        `yaml:"format"`
	Backend    string        `yaml:"backend"`
	Output     string        `yaml:"output"`
	Language   string        `yaml:"language"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxPages   int           `yaml:"max_pages"`
	NoColor    bool          `yaml:"no_color"`
	Trace      bool          `yaml:"trace"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		UserAgent: useragents.DefaultAlias,
		Cookies:   true,
		Region:    "wt-wt",
		Limit:     10,
		Format:    FormatDetailed,
		Backend:   BackendAuto,
		Output:    OutputText,
		Language:  "en-US",
		Timeout:   30 * time.Second,
		MaxPages:  50,
	}
}

// DefaultPath returns $DDG_CONFIG or ~/.config/ddg/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("DDG_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ddg", "config.yaml")
}

// Load reads settings from path on top of Default. An empty path means
// DefaultPath, and a missing default file is not an error; a missing file
// that was asked for explicitly is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &FileError{Path: path, Cause: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), &FileError{Path: path, Cause: fmt.Errorf("failed to parse YAML: %w", err)}
	}
	return cfg, nil
}

// Validate checks every setting against table and the accepted values.
// The first problem found is returned as a *ConfigurationError.
func (c Config) Validate(table *useragents.Table) error {
	if _, ok := table.Lookup(c.UserAgent); !ok {
		return &ConfigurationError{
			Field:       "user agent",
			Value:       c.UserAgent,
			Message:     "no such user agent alias",
			Suggestions: table.Suggest(c.UserAgent, 3),
		}
	}
	if err := oneOf("backend", c.Backend, validBackends); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, validFormats); err != nil {
		return err
	}
	if err := oneOf("output", c.Output, validOutputs); err != nil {
		return err
	}
	if _, err := ParseProxy(c.Proxy); err != nil {
		return err
	}
	if _, err := c.AcceptLanguage(); err != nil {
		return err
	}
	if c.Limit < 0 {
		return &ConfigurationError{Field: "limit", Value: c.Limit, Message: "must not be negative"}
	}
	if c.MaxPages < 0 {
		return &ConfigurationError{Field: "max pages", Value: c.MaxPages, Message: "must not be negative"}
	}
	if c.Timeout <= 0 {
		return &ConfigurationError{Field: "timeout", Value: c.Timeout, Message: "must be positive"}
	}
	if strings.TrimSpace(c.Region) == "" {
		return &ConfigurationError{Field: "region", Value: c.Region, Message: "must not be empty"}
	}
	return nil
}

// UserAgentString resolves the configured alias to its header value.
func (c Config) UserAgentString(table *useragents.Table) (string, error) {
	ua, ok := table.Lookup(c.UserAgent)
	if !ok {
		return "", &ConfigurationError{
			Field:       "user agent",
			Value:       c.UserAgent,
			Message:     "no such user agent alias",
			Suggestions: table.Suggest(c.UserAgent, 3),
		}
	}
	return ua, nil
}

// AcceptLanguage builds the Accept-Language header for the configured
// language: the tag itself, then its base language at a lower weight.
func (c Config) AcceptLanguage() (string, error) {
	if c.Language == "" {
		return "en-US,en;q=0.9", nil
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return "", &ConfigurationError{Field: "language", Value: c.Language, Message: err.Error()}
	}

	header := tag.String()
	base, confidence := tag.Base()
	if confidence != language.No && base.String() != header {
		header += "," + base.String() + ";q=0.9"
	}
	return header, nil
}

// ParseProxy validates a proxy URL. An empty string means no proxy.
func ParseProxy(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ConfigurationError{Field: "proxy", Value: raw, Message: err.Error()}
	}
	if !slices.Contains(validProxySchemes, strings.ToLower(u.Scheme)) {
		return nil, &ConfigurationError{
			Field:   "proxy",
			Value:   redact(u),
			Message: fmt.Sprintf("unsupported scheme %q, use one of %s", u.Scheme, strings.Join(validProxySchemes, ", ")),
		}
	}
	if u.Host == "" {
		return nil, &ConfigurationError{Field: "proxy", Value: redact(u), Message: "missing host"}
	}
	return u, nil
}

func oneOf(field, value string, valid []string) error {
	if slices.Contains(valid, value) {
		return nil
	}
	var suggestions []string
	for _, m := range fuzzy.Find(strings.ToLower(value), valid) {
		suggestions = append(suggestions, m.Str)
	}
	return &ConfigurationError{
		Field:       field,
		Value:       value,
		Message:     "expected one of " + strings.Join(valid, ", "),
		Suggestions: suggestions,
	}
}

func redact(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	c := *u
	c.User = url.UserPassword("***", "***")
	return c.String()
}
