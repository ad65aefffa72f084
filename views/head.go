package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// HeadTags renders the <title>, description, Open Graph and Twitter card
// tags for a page, one per line.
func HeadTags(site SiteConfig, m PageMeta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHeadTags(&buf, site, m)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHeadTags(buf *bytes.Buffer, site SiteConfig, m PageMeta) {
	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(m.Title))
	writeMeta(buf, "name", "description", m.Description)

	writeMeta(buf, "property", "og:title", m.OGTitle)
	writeMeta(buf, "property", "og:description", m.OGDescription)
	writeMeta(buf, "property", "og:image", m.OGImage)
	writeMeta(buf, "property", "og:image:width", fmt.Sprint(OGImageWidth))
	writeMeta(buf, "property", "og:image:height", fmt.Sprint(OGImageHeight))
	writeMeta(buf, "property", "og:url", m.OGURL)
	writeMeta(buf, "property", "og:type", m.OGType)
	writeMeta(buf, "property", "og:site_name", site.Name)

	writeMeta(buf, "name", "twitter:card", "summary_large_image")
	writeMeta(buf, "name", "twitter:title", m.OGTitle)
	writeMeta(buf, "name", "twitter:description", m.OGDescription)
	writeMeta(buf, "name", "twitter:image", m.OGImage)
}

func writeMeta(buf *bytes.Buffer, attr, key, content string) {
	fmt.Fprintf(buf, "<meta %s=\"%s\" content=\"%s\">\n", attr, key, html.EscapeString(content))
}

// RenderString renders cmp into a string.
func RenderString(ctx context.Context, cmp templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
