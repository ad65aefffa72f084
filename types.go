package ogengine

// RouteKind identifies which family of page a request path belongs to.
type RouteKind int

const (
	RouteUnknown RouteKind = iota
	RouteBlogPost
	RouteBlogListing
	RouteProperty
	RouteStaticPage
)

func (k RouteKind) String() string {
	switch k {
	case RouteBlogPost:
		return "blog-post"
	case RouteBlogListing:
		return "blog-listing"
	case RouteProperty:
		return "property"
	case RouteStaticPage:
		return "static-page"
	default:
		return "unknown"
	}
}

// RouteMatch is the classification of a single request path.
// Slug is set for blog posts and properties, Page for static pages.
type RouteMatch struct {
	Kind RouteKind
	Slug string
	Page string
}

// PageMetadata carries the SEO and social-preview fields written into <head>.
type PageMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OGTitle       string `json:"og_title"`
	OGDescription string `json:"og_description"`
	OGImage       string `json:"og_image"`
	OGURL         string `json:"og_url"`
	OGType        string `json:"og_type"` // website, article, profile or blog
}

// BlogPostRecord is a row of the blog_posts table. Empty strings mean NULL.
type BlogPostRecord struct {
	Slug           string `db:"slug" json:"slug"`
	Category       string `db:"category" json:"category"`
	Title          string `db:"title" json:"title"`
	Excerpt        string `db:"excerpt" json:"excerpt"`
	ImageURL       string `db:"image_url" json:"image_url"`
	SEOTitle       string `db:"seo_title" json:"seo_title"`
	SEODescription string `db:"seo_description" json:"seo_description"`
	OGTitle        string `db:"og_title" json:"og_title"`
	OGDescription  string `db:"og_description" json:"og_description"`
	OGImage        string `db:"og_image" json:"og_image"`
	OGURL          string `db:"og_url" json:"og_url"`
	OGType         string `db:"og_type" json:"og_type"`
	CanonicalURL   string `db:"canonical_url" json:"canonical_url"`
}

// PropertyRecord is a row of the properties table. Images holds the
// gallery URLs in their stored order.
type PropertyRecord struct {
	Slug           string
	Title          string
	Description    string
	HeroImage      string
	Images         []string
	SEOTitle       string
	SEODescription string
	OGTitle        string
	OGDescription  string
	OGImage        string
	OGURL          string
	OGType         string
	CanonicalURL   string
}
