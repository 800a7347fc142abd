// Package analytics renders the optional Plausible Analytics snippet for
// the public pages.
package analytics

import (
	"html/template"
	"log"
	"net/url"
	"slices"
	"strings"

	"github.com/mrlokans/locallibrary/internal/config"
)

const defaultScriptURL = "https://plausible.io/js/script.js"

// PlausibleConfig holds the effective Plausible Analytics configuration
type PlausibleConfig struct {
	Enabled    bool
	Domain     string
	ScriptURL  string
	Extensions []string
}

// NewPlausibleConfig builds the configuration from the environment
// settings. Analytics is enabled once a domain is set. Unknown extensions
// are dropped with a warning.
func NewPlausibleConfig(cfg config.Analytics) *PlausibleConfig {
	scriptURL := cfg.PlausibleScriptURL
	if scriptURL == "" {
		scriptURL = defaultScriptURL
	}

	var extensions []string
	for _, ext := range parseExtensions(cfg.PlausibleExtensions) {
		if !IsValidExtension(ext) {
			log.Printf("WARNING: ignoring unknown Plausible extension %q", ext)
			continue
		}
		extensions = append(extensions, ext)
	}

	return &PlausibleConfig{
		Enabled:    cfg.PlausibleDomain != "",
		Domain:     cfg.PlausibleDomain,
		ScriptURL:  scriptURL,
		Extensions: extensions,
	}
}

// ScriptOrigin returns the scheme and host serving the script, or "" when
// analytics is disabled.
func (c *PlausibleConfig) ScriptOrigin() string {
	if c == nil || !c.Enabled {
		return ""
	}
	u, err := url.Parse(c.ScriptURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// BuildScriptURL constructs the Plausible script URL with extensions
func BuildScriptURL(baseURL string, extensions []string) string {
	if len(extensions) == 0 {
		return baseURL
	}

	// Plausible extension format: script.ext1.ext2.js
	if base, found := strings.CutSuffix(baseURL, ".js"); found {
		return base + "." + strings.Join(extensions, ".") + ".js"
	}

	return baseURL
}

// GenerateScriptTag returns safe HTML for the Plausible script tag
func GenerateScriptTag(cfg *PlausibleConfig) template.HTML {
	if cfg == nil || !cfg.Enabled || cfg.Domain == "" {
		return ""
	}

	scriptURL := BuildScriptURL(cfg.ScriptURL, cfg.Extensions)

	return template.HTML(`<script defer data-domain="` + template.HTMLEscapeString(cfg.Domain) + `" src="` + template.HTMLEscapeString(scriptURL) + `"></script>`)
}

// parseExtensions splits comma-separated extensions and trims whitespace
func parseExtensions(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ValidExtensions lists the known Plausible script extensions
var ValidExtensions = []string{
	"outbound-links",
	"file-downloads",
	"tagged-events",
	"hash",
	"compat",
	"local",
	"manual",
	"pageview-props",
	"revenue",
}

// IsValidExtension checks if an extension is known
func IsValidExtension(ext string) bool {
	return slices.Contains(ValidExtensions, ext)
}
