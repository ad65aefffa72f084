package ogengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RESTStore reads content rows from a PostgREST endpoint (the API a hosted
// Supabase project exposes under /rest/v1).
type RESTStore struct {
	baseURL string
	key     string
	client  *http.Client
}

// NewRESTStore returns a store for the project at baseURL authenticated
// with key. A nil client means http.DefaultClient.
func NewRESTStore(baseURL, key string, client *http.Client) (*RESTStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rest store: base URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("rest store: access key is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  client,
	}, nil
}

// Close is a no-op; the HTTP client is owned by the caller.
func (s *RESTStore) Close() error { return nil }

// propertyJSON mirrors a properties row as returned by PostgREST.
type propertyJSON struct {
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	HeroImage      string          `json:"hero_image"`
	Images         json.RawMessage `json:"images"`
	SEOTitle       string          `json:"seo_title"`
	SEODescription string          `json:"seo_description"`
	OGTitle        string          `json:"og_title"`
	OGDescription  string          `json:"og_description"`
	OGImage        string          `json:"og_image"`
	OGURL          string          `json:"og_url"`
	OGType         string          `json:"og_type"`
	CanonicalURL   string          `json:"canonical_url"`
}

func (p propertyJSON) record() PropertyRecord {
	return PropertyRecord{
		Slug:           p.Slug,
		Title:          p.Title,
		Description:    p.Description,
		HeroImage:      p.HeroImage,
		Images:         ParseImages(p.Images),
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		OGTitle:        p.OGTitle,
		OGDescription:  p.OGDescription,
		OGImage:        p.OGImage,
		OGURL:          p.OGURL,
		OGType:         p.OGType,
		CanonicalURL:   p.CanonicalURL,
	}
}

// BlogPostBySlug returns the blog post with the given slug.
func (s *RESTStore) BlogPostBySlug(ctx context.Context, slug string) (BlogPostRecord, error) {
	var rows []BlogPostRecord
	q := url.Values{
		"select": {compactColumns(blogPostColumns)},
		"slug":   {"eq." + slug},
		"limit":  {"1"},
	}
	if err := s.get(ctx, "blog_posts", q, &rows); err != nil {
		return BlogPostRecord{}, fmt.Errorf("fetch blog post %q: %w", slug, err)
	}
	if len(rows) == 0 {
		return BlogPostRecord{}, ErrNotFound
	}
	return rows[0], nil
}

// PropertyBySlug returns the property with the given slug.
func (s *RESTStore) PropertyBySlug(ctx context.Context, slug string) (PropertyRecord, error) {
	var rows []propertyJSON
	q := url.Values{
		"select": {compactColumns(propertyColumns)},
		"slug":   {"eq." + slug},
		"limit":  {"1"},
	}
	if err := s.get(ctx, "properties", q, &rows); err != nil {
		return PropertyRecord{}, fmt.Errorf("fetch property %q: %w", slug, err)
	}
	if len(rows) == 0 {
		return PropertyRecord{}, ErrNotFound
	}
	return rows[0].record(), nil
}

// ListBlogPosts returns every blog post ordered by slug.
func (s *RESTStore) ListBlogPosts(ctx context.Context) ([]BlogPostRecord, error) {
	var rows []BlogPostRecord
	q := url.Values{
		"select": {compactColumns(blogPostColumns)},
		"order":  {"slug.asc"},
	}
	if err := s.get(ctx, "blog_posts", q, &rows); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return rows, nil
}

// ListProperties returns every property ordered by slug.
func (s *RESTStore) ListProperties(ctx context.Context) ([]PropertyRecord, error) {
	var rows []propertyJSON
	q := url.Values{
		"select": {compactColumns(propertyColumns)},
		"order":  {"slug.asc"},
	}
	if err := s.get(ctx, "properties", q, &rows); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	props := make([]PropertyRecord, 0, len(rows))
	for _, r := range rows {
		props = append(props, r.record())
	}
	return props, nil
}

func (s *RESTStore) get(ctx context.Context, table string, q url.Values, dest any) error {
	endpoint := s.baseURL + "/rest/v1/" + table + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// compactColumns turns a column list constant into PostgREST's select form.
func compactColumns(cols string) string {
	fields := strings.FieldsFunc(cols, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	return strings.Join(fields, ",")
}
