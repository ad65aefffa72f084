package ogengine

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://boracay.house", []string{"/"}, "https://boracay.house/"},
		{"https://boracay.house", []string{"blog", "guides", "how-to-buy"}, "https://boracay.house/blog/guides/how-to-buy"},
		{"https://boracay.house/", []string{"sitemap.xml"}, "https://boracay.house/sitemap.xml"},
		{"https://boracay.house", []string{"/about/"}, "https://boracay.house/about"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestPageURL(t *testing.T) {
	tests := map[string]string{
		"/":                  "https://boracay.test/",
		"/villa-sol/":        "https://boracay.test/villa-sol",
		"/blog?ref=fb":       "https://boracay.test/blog",
		"property/villa-sol": "https://boracay.test/property/villa-sol",
	}
	for in, want := range tests {
		if got := PageURL("boracay.test", in); got != want {
			t.Errorf("PageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Villa Sol":         "villa-sol",
		"  Hello, World!  ": "hello-world",
		"already-a-slug":    "already-a-slug",
		"---":               "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripTags(t *testing.T) {
	tests := map[string]string{
		"plain   text\n here":                 "plain text here",
		"<p>Sea <b>view</b></p>\n<p>Pool</p>": "Sea view Pool",
		"Beach &amp; Sunset":                  "Beach & Sunset",
	}
	for in, want := range tests {
		if got := StripTags(in); got != want {
			t.Errorf("StripTags(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("short", 160); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
	long := strings.Repeat("ñ", 200)
	got := truncateRunes(long, 160)
	if n := utf8.RuneCountInString(got); n != 160 {
		t.Errorf("rune count = %d, want 160", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a rune")
	}
}

func TestWithCacheBuster(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := withCacheBuster("https://cdn.test/a.jpg", now); got != "https://cdn.test/a.jpg?t=1700000000123" {
		t.Errorf("got %q", got)
	}
	if got := withCacheBuster("https://cdn.test/a.jpg?w=1200", now); got != "https://cdn.test/a.jpg?w=1200&t=1700000000123" {
		t.Errorf("got %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", " b ", "c"); got != "b" {
		t.Errorf("got %q, want b", got)
	}
	if got := firstNonEmpty("", " "); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
