package ogengine

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

func (a *App) handlePage(c echo.Context) error {
	p := c.Request().URL.Path
	if path.Ext(p) != "" {
		// A file the static dir does not have.
		return echo.ErrNotFound
	}
	resp := a.Pipeline.Handle(c.Request().Context(), Request{
		Path: p,
		Host: c.Request().Host,
	})
	for k, v := range resp.Headers {
		c.Response().Header().Set(k, v)
	}
	if c.Request().Method == http.MethodHead {
		return c.NoContent(resp.StatusCode)
	}
	return c.HTML(resp.StatusCode, resp.Body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, props := a.loadCatalog(c)
	return a.renderSitemap(c, posts, props)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, _ := a.loadCatalog(c)
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	b, err := fs.ReadFile(EmbeddedAssets, "embedded/robots.txt")
	if err != nil {
		return err
	}
	body := string(b) + "\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func handleAdminRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/admin/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
