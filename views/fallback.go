package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// FallbackDocument is served when the SPA shell cannot be fetched. It
// carries default branding metadata for crawlers and sends browsers on to
// pageURL.
func FallbackDocument(site SiteConfig, pageURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		target, err := json.Marshal(pageURL)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		buf.WriteString("<meta charset=\"UTF-8\">\n")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
		writeHeadTags(&buf, site, PageMeta{
			Title:         site.DefaultTitle,
			Description:   site.Description,
			OGTitle:       site.DefaultTitle,
			OGDescription: site.Description,
			OGImage:       site.DefaultImage,
			OGURL:         pageURL,
			OGType:        "website",
		})
		fmt.Fprintf(&buf, "<script type=\"application/ld+json\">%s</script>\n", OrganizationJsonLD(site))
		buf.WriteString("</head>\n<body>\n")
		fmt.Fprintf(&buf, "<h1>Loading %s...</h1>\n", html.EscapeString(site.Name))
		fmt.Fprintf(&buf, "<script>window.location.href = %s;</script>\n", target)
		buf.WriteString("</body>\n</html>\n")
		_, err = w.Write(buf.Bytes())
		return err
	})
}
