package views

// SiteConfig holds the branding values templates need.
type SiteConfig struct {
	Name         string // og:site_name
	URL          string
	DefaultTitle string
	Description  string
	DefaultImage string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> block.
type PageMeta struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGURL         string // og:url
	OGType        string // website, article, profile or blog
}

// Social image dimensions advertised in og:image:width / og:image:height.
const (
	OGImageWidth  = 1200
	OGImageHeight = 630
)

// Preview is what the admin preview page shows for one path.
type Preview struct {
	Path  string
	Route string
	Slug  string
	Meta  PageMeta
}

// Overrides is the SEO/OG override form for one content row. Kind is
// "blog" or "property"; an empty Kind renders a blank form.
type Overrides struct {
	Kind           string
	Slug           string
	Category       string
	SEOTitle       string
	SEODescription string
	OGTitle        string
	OGDescription  string
	OGImage        string
	OGURL          string
	OGType         string
	CanonicalURL   string
}
