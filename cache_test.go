package ogengine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecordCacheHitsSourceOnce(t *testing.T) {
	src := &fakeSource{properties: map[string]PropertyRecord{
		"villa-sol": {Slug: "villa-sol", Title: "Villa Sol"},
	}}
	c := NewRecordCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.PropertyBySlug(ctx, "villa-sol")
		if err != nil || got.Title != "Villa Sol" {
			t.Fatalf("lookup %d: %+v, %v", i, got, err)
		}
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestRecordCacheKeysByKind(t *testing.T) {
	src := &fakeSource{
		posts:      map[string]BlogPostRecord{"same": {Slug: "same", Title: "Post"}},
		properties: map[string]PropertyRecord{"same": {Slug: "same", Title: "Property"}},
	}
	c := NewRecordCache(src, time.Minute)
	ctx := context.Background()

	p, _ := c.BlogPostBySlug(ctx, "same")
	r, _ := c.PropertyBySlug(ctx, "same")
	if p.Title != "Post" || r.Title != "Property" {
		t.Errorf("post %q, property %q", p.Title, r.Title)
	}
}

func TestRecordCacheSkipsFailures(t *testing.T) {
	src := &fakeSource{}
	c := NewRecordCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := c.BlogPostBySlug(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestRecordCacheExpiryAndInvalidate(t *testing.T) {
	src := &fakeSource{posts: map[string]BlogPostRecord{"p": {Slug: "p"}}}
	c := NewRecordCache(src, 50*time.Millisecond)
	ctx := context.Background()

	c.BlogPostBySlug(ctx, "p")
	time.Sleep(80 * time.Millisecond)
	c.BlogPostBySlug(ctx, "p")
	if src.calls != 2 {
		t.Errorf("calls after expiry = %d, want 2", src.calls)
	}

	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("Len after Invalidate = %d", c.Len())
	}
	c.BlogPostBySlug(ctx, "p")
	if src.calls != 3 {
		t.Errorf("calls after Invalidate = %d, want 3", src.calls)
	}
}
