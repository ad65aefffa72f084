package views

import (
	"context"
	"strings"
	"testing"
)

var testSite = SiteConfig{
	Name:         "Boracay.House",
	URL:          "https://boracay.house",
	DefaultTitle: "Boracay.House",
	Description:  "Island stays",
	DefaultImage: "https://boracay.house/images/og-default.jpg",
}

func TestHeadTagsOrderAndEscaping(t *testing.T) {
	out, err := RenderString(context.Background(), HeadTags(testSite, PageMeta{
		Title:         `Sun & "Sand"`,
		Description:   "<b>d</b>",
		OGTitle:       "OG",
		OGDescription: "OGD",
		OGImage:       "https://cdn.test/a.jpg?t=1&x=2",
		OGURL:         "https://boracay.house/villa",
		OGType:        "website",
	}))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 14 {
		t.Fatalf("got %d lines, want 14:\n%s", len(lines), out)
	}
	if lines[0] != "<title>Sun &amp; &#34;Sand&#34;</title>" {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.Contains(out, `<meta name="description" content="&lt;b&gt;d&lt;/b&gt;">`) {
		t.Error("description not escaped")
	}
	if !strings.Contains(out, `<meta property="og:image" content="https://cdn.test/a.jpg?t=1&amp;x=2">`) {
		t.Error("og:image not escaped")
	}
	for _, want := range []string{
		`<meta property="og:image:width" content="1200">`,
		`<meta property="og:image:height" content="630">`,
		`<meta property="og:site_name" content="Boracay.House">`,
		`<meta name="twitter:card" content="summary_large_image">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestFallbackDocument(t *testing.T) {
	out, err := RenderString(context.Background(), FallbackDocument(testSite, "https://boracay.house/villa?x=</script>"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(out, "<h1>Loading Boracay.House...</h1>") {
		t.Error("missing loading heading")
	}
	if strings.Contains(out, "x=</script>") {
		t.Error("redirect target not escaped inside script")
	}
	if !strings.Contains(out, `window.location.href = "https://boracay.house/villa?x=\u003c/script\u003e";`) {
		t.Errorf("redirect script wrong:\n%s", out)
	}
	if !strings.Contains(out, `"@type":"Organization"`) {
		t.Error("missing organization JSON-LD")
	}
	if !strings.Contains(out, `<meta property="og:type" content="website">`) {
		t.Error("fallback og:type is not website")
	}
}

func TestAdminDashboardPreview(t *testing.T) {
	out, err := RenderString(context.Background(), AdminDashboard(testSite, "saved", "tok", 3, &Preview{
		Path:  "/villa",
		Route: "property",
		Slug:  "villa",
		Meta:  PageMeta{OGTitle: "Villa <One>", OGImage: "https://cdn.test/v.jpg"},
	}, nil))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<p class="message">saved</p>`,
		`<tr><th>og:title</th><td>Villa &lt;One&gt;</td></tr>`,
		`<p>3 cached records</p>`,
		`value="tok"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestAdminDashboardOverrides(t *testing.T) {
	out, err := RenderString(context.Background(), AdminDashboard(testSite, "", "tok", 0, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "/admin/overrides/") {
		t.Error("override form shown for a read-only store")
	}

	out, err = RenderString(context.Background(), AdminDashboard(testSite, "", "tok", 0, nil, &Overrides{
		Kind:    "property",
		Slug:    "villa-sol",
		OGTitle: `Villa "Sol"`,
	}))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`action="/admin/overrides/"`,
		`<option value="property" selected>property</option>`,
		`name="slug" value="villa-sol"`,
		`name="og_title" value="Villa &#34;Sol&#34;"`,
		`action="/admin/records/delete/"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}

	out, _ = RenderString(context.Background(), AdminDashboard(testSite, "", "tok", 0, nil, &Overrides{}))
	if strings.Contains(out, "/admin/records/delete/") {
		t.Error("delete form shown without a record")
	}
}
