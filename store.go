package ogengine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no row matches the requested slug.
var ErrNotFound = errors.New("ogengine: record not found")

// RecordSource looks up single content rows by slug.
type RecordSource interface {
	BlogPostBySlug(ctx context.Context, slug string) (BlogPostRecord, error)
	PropertyBySlug(ctx context.Context, slug string) (PropertyRecord, error)
}

// Catalog lists content for the sitemap and feed.
type Catalog interface {
	ListBlogPosts(ctx context.Context) ([]BlogPostRecord, error)
	ListProperties(ctx context.Context) ([]PropertyRecord, error)
}

// ContentStore is the read side of the external content database.
type ContentStore interface {
	RecordSource
	Catalog
	Close() error
}

// ContentWriter edits content rows from the admin dashboard. SQLStore
// implements it; the REST store is read-only.
type ContentWriter interface {
	SaveBlogPost(ctx context.Context, p BlogPostRecord) error
	SaveProperty(ctx context.Context, p PropertyRecord) error
	DeleteBlogPost(ctx context.Context, slug string) error
	DeleteProperty(ctx context.Context, slug string) error
}

const blogPostColumns = `slug, category, title, excerpt, image_url, seo_title, seo_description,
	og_title, og_description, og_image, og_url, og_type, canonical_url`

const propertyColumns = `slug, title, description, hero_image, images, seo_title, seo_description,
	og_title, og_description, og_image, og_url, og_type, canonical_url`

// SQL projections coalesce NULLs so rows scan into plain strings.
const blogPostSelect = `SELECT slug,
	COALESCE(category, '') AS category,
	COALESCE(title, '') AS title,
	COALESCE(excerpt, '') AS excerpt,
	COALESCE(image_url, '') AS image_url,
	COALESCE(seo_title, '') AS seo_title,
	COALESCE(seo_description, '') AS seo_description,
	COALESCE(og_title, '') AS og_title,
	COALESCE(og_description, '') AS og_description,
	COALESCE(og_image, '') AS og_image,
	COALESCE(og_url, '') AS og_url,
	COALESCE(og_type, '') AS og_type,
	COALESCE(canonical_url, '') AS canonical_url
FROM blog_posts`

const propertySelect = `SELECT slug,
	COALESCE(title, '') AS title,
	COALESCE(description, '') AS description,
	COALESCE(hero_image, '') AS hero_image,
	COALESCE(CAST(images AS TEXT), '') AS images,
	COALESCE(seo_title, '') AS seo_title,
	COALESCE(seo_description, '') AS seo_description,
	COALESCE(og_title, '') AS og_title,
	COALESCE(og_description, '') AS og_description,
	COALESCE(og_image, '') AS og_image,
	COALESCE(og_url, '') AS og_url,
	COALESCE(og_type, '') AS og_type,
	COALESCE(canonical_url, '') AS canonical_url
FROM properties`

// propertyRow is the scan target for properties; images stays raw JSON.
type propertyRow struct {
	Slug           string `db:"slug"`
	Title          string `db:"title"`
	Description    string `db:"description"`
	HeroImage      string `db:"hero_image"`
	Images         string `db:"images"`
	SEOTitle       string `db:"seo_title"`
	SEODescription string `db:"seo_description"`
	OGTitle        string `db:"og_title"`
	OGDescription  string `db:"og_description"`
	OGImage        string `db:"og_image"`
	OGURL          string `db:"og_url"`
	OGType         string `db:"og_type"`
	CanonicalURL   string `db:"canonical_url"`
}

func (r propertyRow) record() PropertyRecord {
	return PropertyRecord{
		Slug:           r.Slug,
		Title:          r.Title,
		Description:    r.Description,
		HeroImage:      r.HeroImage,
		Images:         ParseImages([]byte(r.Images)),
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		OGTitle:        r.OGTitle,
		OGDescription:  r.OGDescription,
		OGImage:        r.OGImage,
		OGURL:          r.OGURL,
		OGType:         r.OGType,
		CanonicalURL:   r.CanonicalURL,
	}
}

// SQLStore reads content rows from Postgres or SQLite through sqlx.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore opens a store for driver ("postgres" or "sqlite") at dsn.
// SQLite databases are created on demand and get the schema bootstrapped.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case "postgres":
		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(4)
		return &SQLStore{db: db}, nil
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		db, err := sqlx.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// WAL lets admin override edits write while page requests read.
		if _, err := db.Exec(`
			PRAGMA journal_mode=WAL;
			PRAGMA busy_timeout=5000;
			PRAGMA synchronous=NORMAL;
		`); err != nil {
			db.Close()
			return nil, err
		}
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
		s := &SQLStore{db: db}
		if err := s.ensureSchema(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// NewSQLStoreFromDB wraps an existing connection.
func NewSQLStoreFromDB(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS blog_posts (
    slug TEXT PRIMARY KEY,
    category TEXT,
    title TEXT,
    excerpt TEXT,
    image_url TEXT,
    seo_title TEXT,
    seo_description TEXT,
    og_title TEXT,
    og_description TEXT,
    og_image TEXT,
    og_url TEXT,
    og_type TEXT,
    canonical_url TEXT
);
CREATE TABLE IF NOT EXISTS properties (
    slug TEXT PRIMARY KEY,
    title TEXT,
    description TEXT,
    hero_image TEXT,
    images TEXT,
    seo_title TEXT,
    seo_description TEXT,
    og_title TEXT,
    og_description TEXT,
    og_image TEXT,
    og_url TEXT,
    og_type TEXT,
    canonical_url TEXT
);
`)
	return err
}

// BlogPostBySlug returns the blog post with the given slug.
func (s *SQLStore) BlogPostBySlug(ctx context.Context, slug string) (BlogPostRecord, error) {
	var rec BlogPostRecord
	err := s.db.GetContext(ctx, &rec, s.db.Rebind(blogPostSelect+` WHERE slug = ? LIMIT 1`), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPostRecord{}, ErrNotFound
	}
	if err != nil {
		return BlogPostRecord{}, fmt.Errorf("query blog post %q: %w", slug, err)
	}
	return rec, nil
}

// PropertyBySlug returns the property with the given slug.
func (s *SQLStore) PropertyBySlug(ctx context.Context, slug string) (PropertyRecord, error) {
	var row propertyRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(propertySelect+` WHERE slug = ? LIMIT 1`), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return PropertyRecord{}, ErrNotFound
	}
	if err != nil {
		return PropertyRecord{}, fmt.Errorf("query property %q: %w", slug, err)
	}
	return row.record(), nil
}

// ListBlogPosts returns every blog post ordered by slug.
func (s *SQLStore) ListBlogPosts(ctx context.Context) ([]BlogPostRecord, error) {
	var posts []BlogPostRecord
	if err := s.db.SelectContext(ctx, &posts, blogPostSelect+` ORDER BY slug`); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, nil
}

// ListProperties returns every property ordered by slug.
func (s *SQLStore) ListProperties(ctx context.Context) ([]PropertyRecord, error) {
	var rows []propertyRow
	if err := s.db.SelectContext(ctx, &rows, propertySelect+` ORDER BY slug`); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	props := make([]PropertyRecord, 0, len(rows))
	for _, r := range rows {
		props = append(props, r.record())
	}
	return props, nil
}

// SaveBlogPost upserts a blog post. Empty strings are stored as NULL.
func (s *SQLStore) SaveBlogPost(ctx context.Context, p BlogPostRecord) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO blog_posts (`+blogPostColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    category = excluded.category, title = excluded.title, excerpt = excluded.excerpt,
    image_url = excluded.image_url, seo_title = excluded.seo_title,
    seo_description = excluded.seo_description, og_title = excluded.og_title,
    og_description = excluded.og_description, og_image = excluded.og_image,
    og_url = excluded.og_url, og_type = excluded.og_type, canonical_url = excluded.canonical_url`),
		p.Slug, nullable(p.Category), nullable(p.Title), nullable(p.Excerpt), nullable(p.ImageURL),
		nullable(p.SEOTitle), nullable(p.SEODescription), nullable(p.OGTitle), nullable(p.OGDescription),
		nullable(p.OGImage), nullable(p.OGURL), nullable(p.OGType), nullable(p.CanonicalURL))
	return err
}

// SaveProperty upserts a property. Images are stored as a JSON array.
func (s *SQLStore) SaveProperty(ctx context.Context, p PropertyRecord) error {
	var images any
	if len(p.Images) > 0 {
		b, err := json.Marshal(p.Images)
		if err != nil {
			return err
		}
		images = string(b)
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO properties (`+propertyColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    title = excluded.title, description = excluded.description, hero_image = excluded.hero_image,
    images = excluded.images, seo_title = excluded.seo_title,
    seo_description = excluded.seo_description, og_title = excluded.og_title,
    og_description = excluded.og_description, og_image = excluded.og_image,
    og_url = excluded.og_url, og_type = excluded.og_type, canonical_url = excluded.canonical_url`),
		p.Slug, nullable(p.Title), nullable(p.Description), nullable(p.HeroImage), images,
		nullable(p.SEOTitle), nullable(p.SEODescription), nullable(p.OGTitle), nullable(p.OGDescription),
		nullable(p.OGImage), nullable(p.OGURL), nullable(p.OGType), nullable(p.CanonicalURL))
	return err
}

// DeleteBlogPost removes a blog post by slug.
func (s *SQLStore) DeleteBlogPost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM blog_posts WHERE slug = ?`), slug)
	return err
}

// DeleteProperty removes a property by slug.
func (s *SQLStore) DeleteProperty(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM properties WHERE slug = ?`), slug)
	return err
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// ParseImages decodes a stored image gallery. Entries may be plain URL
// strings or objects with a "url" field; anything else is skipped.
func ParseImages(raw []byte) []string {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(item, &obj); err == nil {
			if u := strings.TrimSpace(obj.URL); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}
