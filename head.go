package ogengine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/boracayhouse/ogengine/views"
)

var (
	reHead            = regexp.MustCompile(`(?is)(<head(?:\s[^>]*)?>)(.*?)(</head\s*>)`)
	reTitle           = regexp.MustCompile(`(?is)<title(?:\s[^>]*)?>.*?</title\s*>`)
	reMetaDescription = regexp.MustCompile(`(?i)<meta\s[^>]*name\s*=\s*["']description["'][^>]*>`)
	reMetaOG          = regexp.MustCompile(`(?i)<meta\s[^>]*property\s*=\s*["']og:[^"']*["'][^>]*>`)
	reMetaTwitter     = regexp.MustCompile(`(?i)<meta\s[^>]*name\s*=\s*["']twitter:[^"']*["'][^>]*>`)
	reBlankLines      = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
)

// ErrNoHead is returned by RewriteHead for documents without a <head>.
var ErrNoHead = errors.New("ogengine: document has no <head>")

// RewriteHead replaces the title, description, Open Graph and Twitter tags
// inside the first <head> of doc with tags built from meta. On any error
// doc is returned untouched: ErrNoHead when there is no <head> element,
// otherwise the failure to render the tags.
func RewriteHead(doc string, site views.SiteConfig, meta PageMetadata) (string, error) {
	loc := reHead.FindStringSubmatchIndex(doc)
	if loc == nil {
		return doc, ErrNoHead
	}
	open := doc[loc[2]:loc[3]]
	head := doc[loc[4]:loc[5]]
	closing := doc[loc[6]:loc[7]]

	head = reTitle.ReplaceAllString(head, "")
	head = reMetaDescription.ReplaceAllString(head, "")
	head = reMetaOG.ReplaceAllString(head, "")
	head = reMetaTwitter.ReplaceAllString(head, "")
	head = reBlankLines.ReplaceAllString(head, "\n")
	head = strings.TrimRight(head, " \t\r\n")

	tags, err := views.RenderString(context.Background(), views.HeadTags(site, toViewMeta(meta)))
	if err != nil {
		return doc, fmt.Errorf("render head tags: %w", err)
	}

	var b strings.Builder
	b.Grow(len(doc) + len(tags))
	b.WriteString(doc[:loc[0]])
	b.WriteString(open)
	b.WriteString(head)
	b.WriteString("\n")
	b.WriteString(tags)
	b.WriteString(closing)
	b.WriteString(doc[loc[1]:])
	return b.String(), nil
}

func toViewMeta(m PageMetadata) views.PageMeta {
	return views.PageMeta{
		Title:         m.Title,
		Description:   m.Description,
		OGTitle:       m.OGTitle,
		OGDescription: m.OGDescription,
		OGImage:       m.OGImage,
		OGURL:         m.OGURL,
		OGType:        m.OGType,
	}
}
