package ogengine

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// Defaults are the site-wide values every resolution falls back to.
type Defaults struct {
	Title       string
	Description string
	Image       string
}

// Resolver turns a RouteMatch into PageMetadata, consulting the content
// store for blog posts and properties.
type Resolver struct {
	source   RecordSource
	cards    CardLocator
	defaults Defaults
	timeout  time.Duration
	logger   echo.Logger
}

// NewResolver creates a Resolver. source may be nil, in which case every
// dynamic route resolves to defaults. cards may be nil when no uploaded
// social cards exist.
func NewResolver(source RecordSource, cards CardLocator, defaults Defaults, timeout time.Duration, logger echo.Logger) *Resolver {
	return &Resolver{
		source:   source,
		cards:    cards,
		defaults: defaults,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve builds the metadata for m. pageURL is the absolute URL of the
// request and is used as og:url unless the store overrides it. Lookup
// failures are logged and never returned: the result always has every
// field populated.
func (r *Resolver) Resolve(ctx context.Context, m RouteMatch, pageURL string) PageMetadata {
	meta := r.base(pageURL)

	switch m.Kind {
	case RouteBlogPost:
		meta.OGType = "article"
		meta.OGImage = ""
		if post, ok := r.lookupBlogPost(ctx, m.Slug); ok {
			applyBlogPost(&meta, post)
		}
		r.applyCard(&meta, m.Slug)
	case RouteBlogListing:
		applyBundle(&meta, blogListingBundle)
	case RouteProperty:
		meta.OGImage = ""
		if prop, ok := r.lookupProperty(ctx, m.Slug); ok {
			applyProperty(&meta, prop)
		}
		r.applyCard(&meta, m.Slug)
	case RouteStaticPage:
		if b, ok := staticBundles[m.Page]; ok {
			applyBundle(&meta, b)
		}
	}

	return r.fill(meta, pageURL)
}

func (r *Resolver) base(pageURL string) PageMetadata {
	return PageMetadata{
		Title:         r.defaults.Title,
		Description:   r.defaults.Description,
		OGTitle:       r.defaults.Title,
		OGDescription: r.defaults.Description,
		OGImage:       r.defaults.Image,
		OGURL:         pageURL,
		OGType:        "website",
	}
}

// fill restores defaults for anything an override chain left blank.
func (r *Resolver) fill(meta PageMetadata, pageURL string) PageMetadata {
	meta.Title = firstNonEmpty(meta.Title, r.defaults.Title)
	meta.Description = firstNonEmpty(meta.Description, r.defaults.Description)
	meta.OGTitle = firstNonEmpty(meta.OGTitle, meta.Title)
	meta.OGDescription = firstNonEmpty(meta.OGDescription, meta.Description)
	meta.OGImage = firstNonEmpty(meta.OGImage, r.defaults.Image)
	meta.OGURL = firstNonEmpty(meta.OGURL, pageURL)
	meta.OGType = firstNonEmpty(meta.OGType, "website")
	return meta
}

// applyCard uses the uploaded social card for slug when nothing else
// supplied an image.
func (r *Resolver) applyCard(meta *PageMetadata, slug string) {
	if meta.OGImage != "" || r.cards == nil || slug == "" {
		return
	}
	if u, ok := r.cards.CardURL(slug); ok {
		meta.OGImage = u
	}
}

func (r *Resolver) lookupBlogPost(ctx context.Context, slug string) (BlogPostRecord, bool) {
	if r.source == nil || slug == "" {
		return BlogPostRecord{}, false
	}
	post, err := Bounded(ctx, r.timeout, BlogPostRecord{}, func(ctx context.Context) (BlogPostRecord, error) {
		return r.source.BlogPostBySlug(ctx, slug)
	})
	if err != nil {
		r.logLookupError("blog post", slug, err)
		return BlogPostRecord{}, false
	}
	return post, true
}

func (r *Resolver) lookupProperty(ctx context.Context, slug string) (PropertyRecord, bool) {
	if r.source == nil || slug == "" {
		return PropertyRecord{}, false
	}
	prop, err := Bounded(ctx, r.timeout, PropertyRecord{}, func(ctx context.Context) (PropertyRecord, error) {
		return r.source.PropertyBySlug(ctx, slug)
	})
	if err != nil {
		r.logLookupError("property", slug, err)
		return PropertyRecord{}, false
	}
	return prop, true
}

func (r *Resolver) logLookupError(kind, slug string, err error) {
	if r.logger == nil {
		return
	}
	if errors.Is(err, ErrNotFound) {
		r.logger.Infof("no %s for slug %q, using defaults", kind, slug)
		return
	}
	r.logger.Warnf("%s lookup for %q failed, using defaults: %v", kind, slug, err)
}

func applyBundle(meta *PageMetadata, b pageBundle) {
	meta.Title = b.Title
	meta.Description = b.Description
	meta.OGTitle = b.Title
	meta.OGDescription = b.Description
	if b.Image != "" {
		meta.OGImage = b.Image
	}
	meta.OGType = b.Type
}

func applyBlogPost(meta *PageMetadata, p BlogPostRecord) {
	meta.Title = firstNonEmpty(p.OGTitle, p.SEOTitle, p.Title, meta.Title)
	meta.Description = firstNonEmpty(p.OGDescription, p.SEODescription, p.Excerpt, meta.Description)
	meta.OGTitle = meta.Title
	meta.OGDescription = meta.Description
	meta.OGImage = firstNonEmpty(p.OGImage, p.ImageURL, meta.OGImage)
	meta.OGURL = firstNonEmpty(p.OGURL, p.CanonicalURL, meta.OGURL)
	meta.OGType = firstNonEmpty(p.OGType, "article")
}

func applyProperty(meta *PageMetadata, p PropertyRecord) {
	var firstImage string
	if len(p.Images) > 0 {
		firstImage = p.Images[0]
	}
	rawDescription := truncateRunes(StripTags(p.Description), maxDescriptionLen)

	meta.Title = firstNonEmpty(p.OGTitle, p.SEOTitle, p.Title, meta.Title)
	meta.Description = firstNonEmpty(p.SEODescription, rawDescription, meta.Description)
	meta.OGTitle = meta.Title
	meta.OGDescription = firstNonEmpty(p.OGDescription, meta.Description)
	meta.OGImage = firstNonEmpty(p.OGImage, p.HeroImage, firstImage, meta.OGImage)
	meta.OGURL = firstNonEmpty(p.OGURL, p.CanonicalURL, meta.OGURL)
	meta.OGType = firstNonEmpty(p.OGType, "website")
}
