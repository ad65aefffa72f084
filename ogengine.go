// Package ogengine serves the Boracay.House single-page app shell with
// route-specific Open Graph, Twitter card and SEO tags, so link previews on
// social networks show the page being shared instead of the site defaults.
//
// Each request is classified by path, resolved against the content store
// (blog posts and properties) or a compiled-in page table, and written into
// the <head> of the deployed index.html. Every external call is bounded by a
// timeout and degrades to defaults; the handler always answers with HTML.
package ogengine

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boracayhouse/ogengine/views"
)

// App is the central application. It wires together the content store,
// record cache, pipeline, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    ContentStore
	Cache    *RecordCache
	Cards    *CardDir
	Pipeline *Pipeline

	loginLimiter *LoginLimiter
	httpClient   *http.Client
	customRoutes []func(*App)
	initialized  bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return a
}

// Init opens the content store (unless one was injected) and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo as an http.Handler.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("ogengine: SessionSecret is required when AdminPassword is set")
	}

	if a.Store == nil {
		store, err := a.openStore()
		if err != nil {
			return fmt.Errorf("ogengine: init store: %w", err)
		}
		a.Store = store
	}
	a.Cache = NewRecordCache(a.Store, a.Config.RecordCacheTTL)
	a.Cards = NewCardDir(a.Config.StaticDir, a.Config.URL)

	logger := a.Echo.Logger
	site := a.siteView()
	a.Pipeline = NewPipeline(
		site,
		a.Config.OriginURL,
		NewResolver(a.Cache, a.Cards, Defaults{
			Title:       a.Config.DefaultTitle,
			Description: a.Config.DefaultDescription,
			Image:       a.Config.DefaultImage,
		}, a.Config.LookupTimeout, logger),
		NewDocumentFetcher(a.httpClient, a.Config.FetchTimeout),
		NewImageValidator(a.httpClient, a.Config.ImageTimeout, a.Config.DefaultImage, logger),
		logger,
	)

	if a.Config.AdminPassword != "" {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the app and runs the HTTP server until it fails or is
// shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) openStore() (ContentStore, error) {
	switch a.Config.StoreDriver {
	case "rest":
		s, err := NewRESTStore(a.Config.StoreURL, a.Config.StoreKey, a.httpClient)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "sqlite":
		s, err := NewSQLStore(a.Config.StoreDriver, a.Config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.Config.StoreDriver)
	}
}

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:         a.Config.Name,
		URL:          a.Config.URL,
		DefaultTitle: a.Config.DefaultTitle,
		Description:  a.Config.DefaultDescription,
		DefaultImage: a.Config.DefaultImage,
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	if a.Config.AdminPassword != "" {
		e.GET("/admin", handleAdminRedirect)
		g := e.Group("/admin", a.adminMiddleware()...)
		g.GET("/", a.handleAdmin)
		g.POST("/login/", a.handleAdminLogin)
		g.POST("/logout/", handleAdminLogout)
		g.POST("/overrides/", a.handleOverrides)
		g.POST("/records/delete/", a.handleRecordDelete)
		g.POST("/cache/purge/", a.handleCachePurge)
		g.POST("/cards/upload/", a.handleCardUpload)
	}

	// Everything else is a page of the single-page app.
	e.Match([]string{http.MethodGet, http.MethodHead}, "/*", a.handlePage, a.pageRateLimiter())
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
