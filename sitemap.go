package ogengine

import (
	"context"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapPages are the static pages worth indexing, in display order.
var sitemapPages = []string{
	"/",
	"/airbnb",
	"/for-sale",
	"/about",
	"/contact",
	"/guest-help",
	"/vacation-rental-management",
	"/we-do-better",
	"/privacy-policy",
	"/blog",
}

// loadCatalog lists blog posts and properties, bounded by the lookup
// timeout. Failures are logged and yield empty lists.
func (a *App) loadCatalog(c echo.Context) ([]BlogPostRecord, []PropertyRecord) {
	ctx := c.Request().Context()
	posts, err := Bounded[[]BlogPostRecord](ctx, a.Config.LookupTimeout, nil, func(ctx context.Context) ([]BlogPostRecord, error) {
		return a.Store.ListBlogPosts(ctx)
	})
	if err != nil {
		c.Logger().Warnf("list blog posts: %v", err)
	}
	props, err := Bounded[[]PropertyRecord](ctx, a.Config.LookupTimeout, nil, func(ctx context.Context) ([]PropertyRecord, error) {
		return a.Store.ListProperties(ctx)
	})
	if err != nil {
		c.Logger().Warnf("list properties: %v", err)
	}
	return posts, props
}

func blogPostURL(base string, p BlogPostRecord) string {
	if u := firstNonEmpty(p.CanonicalURL, p.OGURL); u != "" {
		return u
	}
	if p.Category == "" || p.Slug == "" {
		return ""
	}
	return BuildURL(base, "blog", p.Category, p.Slug)
}

func propertyURL(base string, p PropertyRecord) string {
	if u := firstNonEmpty(p.CanonicalURL, p.OGURL); u != "" {
		return u
	}
	if p.Slug == "" {
		return ""
	}
	return BuildURL(base, "property", p.Slug)
}

func (a *App) renderSitemap(c echo.Context, posts []BlogPostRecord, props []PropertyRecord) error {
	base := a.Config.URL
	urls := make([]sitemapURL, 0, len(sitemapPages)+len(posts)+len(props))
	for _, p := range sitemapPages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p)})
	}
	for _, p := range props {
		if loc := propertyURL(base, p); loc != "" {
			urls = append(urls, sitemapURL{Loc: loc})
		}
	}
	for _, p := range posts {
		if loc := blogPostURL(base, p); loc != "" {
			urls = append(urls, sitemapURL{Loc: loc})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
