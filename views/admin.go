package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

func adminPage(title string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n")
		buf.WriteString("<meta name=\"robots\" content=\"noindex\">\n")
		fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
		buf.WriteString("</head>\n<body>\n")
		body(&buf)
		buf.WriteString("</body>\n</html>\n")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func csrfField(buf *bytes.Buffer, token string) {
	fmt.Fprintf(buf, "<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", html.EscapeString(token))
}

// AdminLogin renders the password form.
func AdminLogin(site SiteConfig, showError bool, csrfToken string) templ.Component {
	return adminPage(site.Name+" admin", func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, "<h1>%s admin</h1>\n", html.EscapeString(site.Name))
		if showError {
			buf.WriteString("<p class=\"error\">Wrong password.</p>\n")
		}
		buf.WriteString("<form method=\"post\" action=\"/admin/login/\">\n")
		csrfField(buf, csrfToken)
		buf.WriteString("<input type=\"password\" name=\"password\" autofocus>\n")
		buf.WriteString("<button type=\"submit\">Log in</button>\n</form>\n")
	})
}

// AdminDashboard renders the metadata preview form, the result of the last
// preview if any, the cache controls and the OG card upload form. The
// override editor is shown only when edit is non-nil.
func AdminDashboard(site SiteConfig, msg string, csrfToken string, cached int, preview *Preview, edit *Overrides) templ.Component {
	return adminPage(site.Name+" admin", func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, "<h1>%s admin</h1>\n", html.EscapeString(site.Name))
		if msg != "" {
			fmt.Fprintf(buf, "<p class=\"message\">%s</p>\n", html.EscapeString(msg))
		}

		buf.WriteString("<h2>Preview metadata</h2>\n<form method=\"get\" action=\"/admin/\">\n")
		path := "/"
		if preview != nil {
			path = preview.Path
		}
		fmt.Fprintf(buf, "<input type=\"text\" name=\"path\" value=\"%s\">\n", html.EscapeString(path))
		buf.WriteString("<button type=\"submit\">Resolve</button>\n</form>\n")

		if preview != nil {
			buf.WriteString("<table>\n")
			row := func(k, v string) {
				fmt.Fprintf(buf, "<tr><th>%s</th><td>%s</td></tr>\n", html.EscapeString(k), html.EscapeString(v))
			}
			row("route", preview.Route)
			if preview.Slug != "" {
				row("slug", preview.Slug)
			}
			row("title", preview.Meta.Title)
			row("description", preview.Meta.Description)
			row("og:title", preview.Meta.OGTitle)
			row("og:description", preview.Meta.OGDescription)
			row("og:image", preview.Meta.OGImage)
			row("og:url", preview.Meta.OGURL)
			row("og:type", preview.Meta.OGType)
			buf.WriteString("</table>\n")
			if preview.Meta.OGImage != "" {
				fmt.Fprintf(buf, "<img src=\"%s\" width=\"600\" alt=\"og:image\">\n", html.EscapeString(preview.Meta.OGImage))
			}
		}

		if edit != nil {
			overridesForm(buf, csrfToken, edit)
		}

		buf.WriteString("<h2>Record cache</h2>\n")
		fmt.Fprintf(buf, "<p>%d cached records</p>\n", cached)
		buf.WriteString("<form method=\"post\" action=\"/admin/cache/purge/\">\n")
		csrfField(buf, csrfToken)
		buf.WriteString("<button type=\"submit\">Purge</button>\n</form>\n")

		buf.WriteString("<h2>Upload OG card</h2>\n")
		buf.WriteString("<form method=\"post\" action=\"/admin/cards/upload/\" enctype=\"multipart/form-data\">\n")
		csrfField(buf, csrfToken)
		buf.WriteString("<input type=\"text\" name=\"slug\" placeholder=\"slug\">\n")
		buf.WriteString("<input type=\"file\" name=\"image\" accept=\"image/*\">\n")
		buf.WriteString("<button type=\"submit\">Upload</button>\n</form>\n")

		buf.WriteString("<form method=\"post\" action=\"/admin/logout/\">\n")
		csrfField(buf, csrfToken)
		buf.WriteString("<button type=\"submit\">Log out</button>\n</form>\n")
	})
}

func overridesForm(buf *bytes.Buffer, csrfToken string, o *Overrides) {
	buf.WriteString("<h2>SEO overrides</h2>\n")
	buf.WriteString("<p>Blank fields clear the override and fall back to the record.</p>\n")
	buf.WriteString("<form method=\"post\" action=\"/admin/overrides/\">\n")
	csrfField(buf, csrfToken)
	buf.WriteString("<select name=\"kind\">\n")
	for _, k := range []string{"blog", "property"} {
		sel := ""
		if o.Kind == k {
			sel = " selected"
		}
		fmt.Fprintf(buf, "<option value=\"%s\"%s>%s</option>\n", k, sel, k)
	}
	buf.WriteString("</select>\n")
	field := func(name, value string) {
		fmt.Fprintf(buf, "<label>%s <input type=\"text\" name=\"%s\" value=\"%s\"></label>\n",
			name, name, html.EscapeString(value))
	}
	field("slug", o.Slug)
	field("category", o.Category)
	field("seo_title", o.SEOTitle)
	field("seo_description", o.SEODescription)
	field("og_title", o.OGTitle)
	field("og_description", o.OGDescription)
	field("og_image", o.OGImage)
	field("og_url", o.OGURL)
	field("og_type", o.OGType)
	field("canonical_url", o.CanonicalURL)
	buf.WriteString("<button type=\"submit\">Save</button>\n</form>\n")

	if o.Kind == "" || o.Slug == "" {
		return
	}
	buf.WriteString("<form method=\"post\" action=\"/admin/records/delete/\">\n")
	csrfField(buf, csrfToken)
	fmt.Fprintf(buf, "<input type=\"hidden\" name=\"kind\" value=\"%s\">\n", html.EscapeString(o.Kind))
	fmt.Fprintf(buf, "<input type=\"hidden\" name=\"slug\" value=\"%s\">\n", html.EscapeString(o.Slug))
	fmt.Fprintf(buf, "<button type=\"submit\">Delete %s %s</button>\n</form>\n", html.EscapeString(o.Kind), html.EscapeString(o.Slug))
}
