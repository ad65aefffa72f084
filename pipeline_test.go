package ogengine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boracayhouse/ogengine/views"
)

const testHost = "boracay.test"

type pipelineFixture struct {
	pipeline *Pipeline
	source   *fakeSource
	images   *httptest.Server
	origin   *httptest.Server
	site     views.SiteConfig
}

func newPipelineFixture(t *testing.T, src *fakeSource, originHandler http.HandlerFunc, fetchTimeout time.Duration) *pipelineFixture {
	t.Helper()
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(images.Close)

	if originHandler == nil {
		originHandler = func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/index.html" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(shellHTML))
		}
	}
	origin := httptest.NewServer(originHandler)
	t.Cleanup(origin.Close)

	site := testSite
	site.URL = "https://" + testHost
	site.DefaultImage = images.URL + "/default.jpg"
	defaults := Defaults{Title: site.DefaultTitle, Description: site.Description, Image: site.DefaultImage}
	logger := newTestLogger()

	p := NewPipeline(
		site,
		origin.URL,
		NewResolver(src, nil, defaults, time.Second, logger),
		NewDocumentFetcher(nil, fetchTimeout),
		NewImageValidator(nil, time.Second, site.DefaultImage, logger),
		logger,
	)
	return &pipelineFixture{pipeline: p, source: src, images: images, origin: origin, site: site}
}

func metaContent(body, attr, key string) string {
	re := regexp.MustCompile(`<meta ` + attr + `="` + regexp.QuoteMeta(key) + `" content="([^"]*)">`)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return m[1]
}

func assertSuccessResponse(t *testing.T, resp Response) {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Headers["Content-Type"]; !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := resp.Headers["Cache-Control"]; cc != "public, max-age=300" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestPipelineBlogPostScenario(t *testing.T) {
	src := &fakeSource{posts: map[string]BlogPostRecord{
		"how-to-buy": {Slug: "how-to-buy", Title: "How To Buy", OGTitle: "Buying Guide"},
	}}
	fx := newPipelineFixture(t, src, nil, time.Second)
	src.posts["how-to-buy"] = BlogPostRecord{
		Slug:     "how-to-buy",
		Title:    "How To Buy",
		OGTitle:  "Buying Guide",
		ImageURL: fx.images.URL + "/buy.jpg",
	}

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/blog/tips/how-to-buy", Host: testHost})
	assertSuccessResponse(t, resp)

	if !strings.Contains(resp.Body, "<title>Buying Guide</title>") {
		t.Errorf("body missing resolved title:\n%s", resp.Body)
	}
	if !strings.Contains(resp.Body, `<meta property="og:type" content="article">`) {
		t.Error("body missing og:type article")
	}
	if img := metaContent(resp.Body, "property", "og:image"); !strings.HasPrefix(img, fx.images.URL+"/buy.jpg?t=") {
		t.Errorf("og:image = %q", img)
	}
	if u := metaContent(resp.Body, "property", "og:url"); u != "https://"+testHost+"/blog/tips/how-to-buy" {
		t.Errorf("og:url = %q", u)
	}
	if !strings.Contains(resp.Body, `<div id="root"></div>`) {
		t.Error("body of the shell was lost")
	}
}

func TestPipelineUnknownPropertyScenario(t *testing.T) {
	src := &fakeSource{}
	fx := newPipelineFixture(t, src, nil, time.Second)

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/some-unknown-slug", Host: testHost})
	assertSuccessResponse(t, resp)

	if src.calls != 1 {
		t.Errorf("store calls = %d, want 1 property lookup", src.calls)
	}
	if !strings.Contains(resp.Body, "<title>"+fx.site.DefaultTitle+"</title>") {
		t.Errorf("body missing default title")
	}
	if typ := metaContent(resp.Body, "property", "og:type"); typ != "website" {
		t.Errorf("og:type = %q, want website", typ)
	}
	if img := metaContent(resp.Body, "property", "og:image"); !strings.HasPrefix(img, fx.site.DefaultImage) {
		t.Errorf("og:image = %q, want default image", img)
	}
	if u := metaContent(resp.Body, "property", "og:url"); u != "https://"+testHost+"/some-unknown-slug" {
		t.Errorf("og:url = %q", u)
	}
}

func TestPipelineOriginTimeoutScenario(t *testing.T) {
	src := &fakeSource{posts: map[string]BlogPostRecord{
		"how-to-buy": {OGTitle: "Buying Guide"},
	}}
	release := make(chan struct{})
	slowOrigin := func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}
	fx := newPipelineFixture(t, src, slowOrigin, 30*time.Millisecond)
	defer close(release)

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/blog/tips/how-to-buy", Host: testHost})

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Headers["Content-Type"]; !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(resp.Body, "<h1>Loading Boracay.House...</h1>") {
		t.Errorf("fallback heading missing:\n%s", resp.Body)
	}
	if !strings.Contains(resp.Body, `window.location.href = "https://`+testHost+`/blog/tips/how-to-buy"`) {
		t.Errorf("redirect script missing:\n%s", resp.Body)
	}
	if strings.Contains(resp.Body, "Buying Guide") {
		t.Error("fallback must not carry store-sourced metadata")
	}
	if src.calls != 0 {
		t.Errorf("store calls = %d, want 0", src.calls)
	}
	if img := metaContent(resp.Body, "property", "og:image"); img != fx.site.DefaultImage {
		t.Errorf("fallback og:image = %q, want untouched default", img)
	}
}

func TestPipelineOriginErrorStatus(t *testing.T) {
	failing := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}
	fx := newPipelineFixture(t, &fakeSource{}, failing, time.Second)

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/about", Host: testHost})
	if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Body, "Loading Boracay.House...") {
		t.Errorf("expected fallback document, got %d:\n%s", resp.StatusCode, resp.Body)
	}
	if cc := resp.Headers["Cache-Control"]; cc == "public, max-age=300" {
		t.Error("fallback document must not be cached as a rewritten page")
	}
}

func TestPipelinePropertyGalleryScenario(t *testing.T) {
	src := &fakeSource{properties: map[string]PropertyRecord{}}
	fx := newPipelineFixture(t, src, nil, time.Second)
	src.properties["villa-1"] = PropertyRecord{
		Slug:   "villa-1",
		Title:  "Villa One",
		Images: []string{fx.images.URL + "/a.jpg", fx.images.URL + "/b.jpg"},
	}

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/property/villa-1", Host: testHost})
	assertSuccessResponse(t, resp)

	if img := metaContent(resp.Body, "property", "og:image"); !strings.HasPrefix(img, fx.images.URL+"/a.jpg") {
		t.Errorf("og:image = %q, want first gallery image", img)
	}
	if tw := metaContent(resp.Body, "name", "twitter:image"); !strings.HasPrefix(tw, fx.images.URL+"/a.jpg") {
		t.Errorf("twitter:image = %q", tw)
	}
	if !strings.Contains(resp.Body, "<title>Villa One</title>") {
		t.Error("body missing property title")
	}
}

func TestPipelineBrokenImageFallsBackToDefault(t *testing.T) {
	src := &fakeSource{properties: map[string]PropertyRecord{}}
	fx := newPipelineFixture(t, src, nil, time.Second)
	src.properties["villa-2"] = PropertyRecord{HeroImage: fx.images.URL + "/missing.jpg"}

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/villa-2", Host: testHost})
	if img := metaContent(resp.Body, "property", "og:image"); img != fx.site.DefaultImage {
		t.Errorf("og:image = %q, want default without cache-buster", img)
	}
}

func TestPipelineShellWithoutHead(t *testing.T) {
	bare := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>bare</body></html>"))
	}
	fx := newPipelineFixture(t, &fakeSource{}, bare, time.Second)

	resp := fx.pipeline.Handle(context.Background(), Request{Path: "/contact", Host: testHost})
	assertSuccessResponse(t, resp)
	if resp.Body != "<html><body>bare</body></html>" {
		t.Errorf("body = %q, want shell unmodified", resp.Body)
	}
}

func TestPipelineBlogIndexScenario(t *testing.T) {
	src := &fakeSource{}
	fx := newPipelineFixture(t, src, nil, time.Second)

	for _, path := range []string{"/blog", "/blog/"} {
		resp := fx.pipeline.Handle(context.Background(), Request{Path: path, Host: testHost})
		assertSuccessResponse(t, resp)
		if typ := metaContent(resp.Body, "property", "og:type"); typ != "blog" {
			t.Errorf("%s: og:type = %q, want blog", path, typ)
		}
		if u := metaContent(resp.Body, "property", "og:url"); u != "https://"+testHost+"/blog" {
			t.Errorf("%s: og:url = %q", path, u)
		}
	}
	if src.calls != 0 {
		t.Errorf("store calls = %d, want 0 for the blog index", src.calls)
	}
}

func TestPipelineIgnoresForeignHost(t *testing.T) {
	var foreignHits atomic.Int32
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignHits.Add(1)
		w.Write([]byte("<html><head><title>spoofed</title></head><body>spoofed</body></html>"))
	}))
	defer foreign.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(shellHTML))
	}))
	defer origin.Close()

	site := testSite
	site.URL = origin.URL
	site.DefaultImage = origin.URL + "/default.jpg"
	logger := newTestLogger()
	p := NewPipeline(
		site,
		"",
		NewResolver(&fakeSource{}, nil, Defaults{Title: site.DefaultTitle, Image: site.DefaultImage}, time.Second, logger),
		NewDocumentFetcher(nil, time.Second),
		NewImageValidator(nil, time.Second, site.DefaultImage, logger),
		logger,
	)
	siteHost := strings.TrimPrefix(origin.URL, "http://")
	foreignHost := strings.TrimPrefix(foreign.URL, "http://")

	resp := p.Handle(context.Background(), Request{Path: "/news/today", Host: foreignHost})
	assertSuccessResponse(t, resp)
	if n := foreignHits.Load(); n != 0 {
		t.Errorf("foreign host fetched %d times", n)
	}
	if strings.Contains(resp.Body, "spoofed") {
		t.Error("response carries the foreign document")
	}
	if u := metaContent(resp.Body, "property", "og:url"); u != "https://"+siteHost+"/news/today" {
		t.Errorf("og:url = %q, want the site host", u)
	}

	_, meta := p.Preview(context.Background(), "evil.example", "/news/today")
	if meta.OGURL != "https://"+siteHost+"/news/today" {
		t.Errorf("preview og:url = %q", meta.OGURL)
	}
}

func TestPageHost(t *testing.T) {
	p := &Pipeline{site: views.SiteConfig{URL: "https://boracay.house"}}
	tests := []struct {
		in, want string
	}{
		{"boracay.house", "boracay.house"},
		{"www.boracay.house", "www.boracay.house"},
		{"WWW.Boracay.House", "www.boracay.house"},
		{"evil.example", "boracay.house"},
		{"boracay.house.evil.example", "boracay.house"},
		{"", "boracay.house"},
	}
	for _, tt := range tests {
		if got := p.pageHost(tt.in); got != tt.want {
			t.Errorf("pageHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	www := &Pipeline{site: views.SiteConfig{URL: "https://www.boracay.house/"}}
	if got := www.pageHost("boracay.house"); got != "boracay.house" {
		t.Errorf("bare host with www site = %q", got)
	}
}
