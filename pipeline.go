package ogengine

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/boracayhouse/ogengine/views"
)

const (
	cacheControlRewritten = "public, max-age=300"
	cacheControlFallback  = "no-store"
)

// Request is the part of an incoming request the pipeline looks at.
type Request struct {
	Path string
	Host string
}

// Response is a fully rendered HTML response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Pipeline serves the SPA shell with route-specific social metadata.
type Pipeline struct {
	site      views.SiteConfig
	originURL string
	resolver  *Resolver
	fetcher   *DocumentFetcher
	images    *ImageValidator
	logger    echo.Logger
}

// NewPipeline wires the pipeline stages together. originURL may be empty,
// in which case the shell is fetched from the site URL.
func NewPipeline(site views.SiteConfig, originURL string, resolver *Resolver, fetcher *DocumentFetcher, images *ImageValidator, logger echo.Logger) *Pipeline {
	return &Pipeline{
		site:      site,
		originURL: originURL,
		resolver:  resolver,
		fetcher:   fetcher,
		images:    images,
		logger:    logger,
	}
}

// Handle runs classify, fetch, resolve, image check and head rewrite for
// one request. It always produces a 200 HTML response.
func (p *Pipeline) Handle(ctx context.Context, req Request) Response {
	host := p.pageHost(req.Host)
	pageURL := PageURL(host, req.Path)
	match := Classify(req.Path)

	origin := p.originURL
	if origin == "" {
		origin = strings.TrimRight(p.site.URL, "/")
	}
	doc, err := p.fetcher.Fetch(ctx, origin)
	if err != nil {
		p.logger.Errorf("fetch index.html from %s failed, serving fallback: %v", origin, err)
		body, rerr := views.RenderString(ctx, views.FallbackDocument(p.site, pageURL))
		if rerr != nil {
			p.logger.Errorf("render fallback document: %v", rerr)
		}
		return htmlResponse(body, cacheControlFallback)
	}

	meta := p.resolver.Resolve(ctx, match, pageURL)
	meta.OGImage = p.images.Validate(ctx, meta.OGImage)

	out, err := RewriteHead(doc, p.site, meta)
	switch {
	case errors.Is(err, ErrNoHead):
		p.logger.Warnf("no <head> in index.html from %s, serving it unmodified", origin)
	case err != nil:
		p.logger.Errorf("rewrite head of index.html from %s, serving it unmodified: %v", origin, err)
	}
	return htmlResponse(out, cacheControlRewritten)
}

// Preview classifies and resolves path without fetching the shell or
// checking the image.
func (p *Pipeline) Preview(ctx context.Context, host, path string) (RouteMatch, PageMetadata) {
	host = p.pageHost(host)
	match := Classify(path)
	return match, p.resolver.Resolve(ctx, match, PageURL(host, path))
}

func htmlResponse(body, cacheControl string) Response {
	return Response{
		StatusCode: 200,
		Headers: map[string]string{
			echo.HeaderContentType: echo.MIMETextHTMLCharsetUTF8,
			"Cache-Control":        cacheControl,
		},
		Body: body,
	}
}

// pageHost returns reqHost when it names the site itself, with or without
// the www prefix, and the host of the site URL otherwise. Any other Host
// header is client-controlled and must not reach og:url.
func (p *Pipeline) pageHost(reqHost string) string {
	site := hostOf(p.site.URL)
	h := strings.ToLower(reqHost)
	bare := strings.TrimPrefix(strings.ToLower(site), "www.")
	if h != "" && (h == bare || h == "www."+bare) {
		return h
	}
	return site
}

func hostOf(siteURL string) string {
	h := strings.TrimPrefix(strings.TrimPrefix(siteURL, "https://"), "http://")
	if i := strings.IndexByte(h, '/'); i >= 0 {
		h = h[:i]
	}
	return h
}
