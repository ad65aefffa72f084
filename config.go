package ogengine

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SiteConfig holds all configuration for the social-preview server.
type SiteConfig struct {
	Name               string // og:site_name (default "Boracay.House")
	URL                string // Canonical site URL (default "https://boracay.house")
	DefaultTitle       string // Title used when nothing better is known
	DefaultDescription string // Description used when nothing better is known
	DefaultImage       string // Absolute URL of the fallback social image

	Addr      string // Listen address (default ":3000")
	StaticDir string // SPA build output served alongside the pipeline (default "dist")
	OriginURL string // Where index.html is fetched from; empty means https://<request host>

	StoreDriver string // "rest", "postgres" or "sqlite" (default "rest")
	StoreURL    string // REST endpoint, e.g. https://xyz.supabase.co
	StoreKey    string // REST access key
	DatabaseURL string // DSN for the postgres and sqlite drivers

	FetchTimeout   time.Duration // index.html fetch bound (default 5s)
	LookupTimeout  time.Duration // content-store lookup bound (default 5s)
	ImageTimeout   time.Duration // image HEAD bound (default 5s)
	RecordCacheTTL time.Duration // content-store record cache TTL (default 5min)

	AdminPassword string // Enables /admin/ when set
	SessionSecret string // Required with AdminPassword
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Boracay.House"
	}
	if c.URL == "" {
		c.URL = "https://boracay.house"
	}
	if c.DefaultTitle == "" {
		c.DefaultTitle = "Boracay.House | Vacation Rentals & Properties for Sale in Boracay"
	}
	if c.DefaultDescription == "" {
		c.DefaultDescription = "Hand-picked villas, apartments and homes in Boracay. Book your island stay or find a property to buy with Boracay.House."
	}
	if c.DefaultImage == "" {
		c.DefaultImage = "https://boracay.house/images/og-default.jpg"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "dist"
	}
	if c.StoreDriver == "" {
		c.StoreDriver = "rest"
	}
	if c.DatabaseURL == "" && c.StoreDriver == "sqlite" {
		c.DatabaseURL = "data/content.db"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 5 * time.Second
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = 5 * time.Second
	}
	if c.ImageTimeout == 0 {
		c.ImageTimeout = 5 * time.Second
	}
	if c.RecordCacheTTL == 0 {
		c.RecordCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithContentStore injects the content store instead of building one from
// SiteConfig.StoreDriver.
func WithContentStore(s ContentStore) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithHTTPClient sets the client used for origin fetches, image checks and
// the REST content store.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.httpClient = c
	}
}

// WithLogger replaces Echo's default logger.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.Echo.Logger = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
