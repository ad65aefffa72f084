package views

import (
	"encoding/json"
	"net/url"
	"path"
)

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// OrganizationJsonLD produces a Schema.org Organization block for cfg.
func OrganizationJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.DefaultImage != "" {
		data["logo"] = cfg.DefaultImage
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
