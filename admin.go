package ogengine

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/boracayhouse/ogengine/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.siteView(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		a.loginLimiter.Reset(ip)
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("failed admin login from %s", ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(a.siteView(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleCachePurge(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	n := a.Cache.Len()
	a.Cache.Invalidate()
	c.Logger().Infof("record cache purged (%d entries)", n)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=Cache+purged.")
}

func (a *App) contentWriter() (ContentWriter, bool) {
	w, ok := a.Store.(ContentWriter)
	return w, ok
}

// handleOverrides upserts the SEO/OG columns of one blog post or property.
// Rows that do not exist yet are created with just the slug and overrides.
func (a *App) handleOverrides(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	w, ok := a.contentWriter()
	if !ok {
		return c.String(http.StatusBadRequest, "Content store is read-only")
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		return c.String(http.StatusBadRequest, "Slug is required")
	}
	ctx := c.Request().Context()
	form := overridesFromForm(c)

	var path string
	switch c.FormValue("kind") {
	case "blog":
		p, err := a.Store.BlogPostBySlug(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			p = BlogPostRecord{Slug: slug}
		} else if err != nil {
			return err
		}
		if cat := strings.TrimSpace(form.Category); cat != "" {
			p.Category = cat
		}
		p.SEOTitle, p.SEODescription = form.SEOTitle, form.SEODescription
		p.OGTitle, p.OGDescription, p.OGImage = form.OGTitle, form.OGDescription, form.OGImage
		p.OGURL, p.OGType, p.CanonicalURL = form.OGURL, form.OGType, form.CanonicalURL
		if err := w.SaveBlogPost(ctx, p); err != nil {
			return err
		}
		if p.Category != "" {
			path = "/blog/" + p.Category + "/" + slug
		}
	case "property":
		p, err := a.Store.PropertyBySlug(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			p = PropertyRecord{Slug: slug}
		} else if err != nil {
			return err
		}
		p.SEOTitle, p.SEODescription = form.SEOTitle, form.SEODescription
		p.OGTitle, p.OGDescription, p.OGImage = form.OGTitle, form.OGDescription, form.OGImage
		p.OGURL, p.OGType, p.CanonicalURL = form.OGURL, form.OGType, form.CanonicalURL
		if err := w.SaveProperty(ctx, p); err != nil {
			return err
		}
		path = "/property/" + slug
	default:
		return c.String(http.StatusBadRequest, "Unknown record kind")
	}

	a.Cache.Invalidate()
	c.Logger().Infof("overrides saved for %s %s", c.FormValue("kind"), slug)
	q := url.Values{"msg": {"Overrides saved."}}
	if path != "" {
		q.Set("path", path)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?"+q.Encode())
}

func (a *App) handleRecordDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	w, ok := a.contentWriter()
	if !ok {
		return c.String(http.StatusBadRequest, "Content store is read-only")
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		return c.String(http.StatusBadRequest, "Slug is required")
	}
	ctx := c.Request().Context()
	var err error
	switch c.FormValue("kind") {
	case "blog":
		err = w.DeleteBlogPost(ctx, slug)
	case "property":
		err = w.DeleteProperty(ctx, slug)
	default:
		return c.String(http.StatusBadRequest, "Unknown record kind")
	}
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	c.Logger().Infof("deleted %s %s", c.FormValue("kind"), slug)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Deleted "+slug+"."))
}

func overridesFromForm(c echo.Context) views.Overrides {
	v := func(name string) string { return strings.TrimSpace(c.FormValue(name)) }
	return views.Overrides{
		Kind:           v("kind"),
		Slug:           v("slug"),
		Category:       v("category"),
		SEOTitle:       v("seo_title"),
		SEODescription: v("seo_description"),
		OGTitle:        v("og_title"),
		OGDescription:  v("og_description"),
		OGImage:        v("og_image"),
		OGURL:          v("og_url"),
		OGType:         v("og_type"),
		CanonicalURL:   v("canonical_url"),
	}
}

// editForm prefills the override editor from the raw row behind match.
// It returns nil when the store cannot be written.
func (a *App) editForm(ctx context.Context, match RouteMatch) *views.Overrides {
	if _, ok := a.contentWriter(); !ok {
		return nil
	}
	edit := &views.Overrides{}
	switch match.Kind {
	case RouteBlogPost:
		edit.Kind, edit.Slug = "blog", match.Slug
		p, err := Bounded(ctx, a.Config.LookupTimeout, BlogPostRecord{}, func(ctx context.Context) (BlogPostRecord, error) {
			return a.Store.BlogPostBySlug(ctx, match.Slug)
		})
		if err == nil {
			edit.Category = p.Category
			edit.SEOTitle, edit.SEODescription = p.SEOTitle, p.SEODescription
			edit.OGTitle, edit.OGDescription, edit.OGImage = p.OGTitle, p.OGDescription, p.OGImage
			edit.OGURL, edit.OGType, edit.CanonicalURL = p.OGURL, p.OGType, p.CanonicalURL
		}
	case RouteProperty:
		edit.Kind, edit.Slug = "property", match.Slug
		p, err := Bounded(ctx, a.Config.LookupTimeout, PropertyRecord{}, func(ctx context.Context) (PropertyRecord, error) {
			return a.Store.PropertyBySlug(ctx, match.Slug)
		})
		if err == nil {
			edit.SEOTitle, edit.SEODescription = p.SEOTitle, p.SEODescription
			edit.OGTitle, edit.OGDescription, edit.OGImage = p.OGTitle, p.OGDescription, p.OGImage
			edit.OGURL, edit.OGType, edit.CanonicalURL = p.OGURL, p.OGType, p.CanonicalURL
		}
	}
	return edit
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	ctx := c.Request().Context()
	var preview *views.Preview
	match := RouteMatch{Kind: RouteUnknown}
	if p := strings.TrimSpace(c.QueryParam("path")); p != "" {
		var meta PageMetadata
		match, meta = a.Pipeline.Preview(ctx, "", p)
		preview = &views.Preview{
			Path:  normalizePath(p),
			Route: match.Kind.String(),
			Slug:  match.Slug,
			Meta:  toViewMeta(meta),
		}
	}
	edit := a.editForm(ctx, match)
	return Render(c, views.AdminDashboard(a.siteView(), msg, CsrfToken(c), a.Cache.Len(), preview, edit))
}
