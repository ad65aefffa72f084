package ogengine

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/boracayhouse/ogengine/views"
)

const (
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	cardsSubdir   = "og"
)

// processCard decodes an image from src, scales it to cover the social card
// size, crops the overflow around the center, and encodes it as JPEG.
func processCard(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode image: empty image")
	}

	crop := coverRect(w, h, views.OGImageWidth, views.OGImageHeight).Add(b.Min)
	dst := image.NewRGBA(image.Rect(0, 0, views.OGImageWidth, views.OGImageHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// coverRect returns the centered region of a w×h source that has the aspect
// ratio of tw×th.
func coverRect(w, h, tw, th int) image.Rectangle {
	if w*th > h*tw {
		cw := h * tw / th
		x := (w - cw) / 2
		return image.Rect(x, 0, x+cw, h)
	}
	ch := w * th / tw
	y := (h - ch) / 2
	return image.Rect(0, y, w, y+ch)
}

// CardLocator finds an uploaded social card for a slug.
type CardLocator interface {
	CardURL(slug string) (string, bool)
}

// CardDir stores social cards as <Dir>/<slug>.jpg, served under
// <BaseURL>/og/<slug>.jpg by the static file middleware.
type CardDir struct {
	Dir     string
	BaseURL string
}

// NewCardDir returns the card directory inside staticDir for siteURL.
func NewCardDir(staticDir, siteURL string) *CardDir {
	return &CardDir{Dir: filepath.Join(staticDir, cardsSubdir), BaseURL: siteURL}
}

// Path is where the card for slug is written.
func (d *CardDir) Path(slug string) string {
	return filepath.Join(d.Dir, Slugify(slug)+".jpg")
}

// URL is where the card for slug is served from.
func (d *CardDir) URL(slug string) string {
	return BuildURL(d.BaseURL, cardsSubdir, Slugify(slug)+".jpg")
}

// CardURL reports the URL of the card for slug if one has been uploaded.
func (d *CardDir) CardURL(slug string) (string, bool) {
	if Slugify(slug) == "" {
		return "", false
	}
	fi, err := os.Stat(d.Path(slug))
	if err != nil || fi.IsDir() {
		return "", false
	}
	return d.URL(slug), true
}

// Save writes an encoded card for slug.
func (d *CardDir) Save(slug string, data []byte) (string, error) {
	dest := d.Path(slug)
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create cards dir: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write card: %w", err)
	}
	return dest, nil
}

func (a *App) handleCardUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	slug := Slugify(c.FormValue("slug"))
	if slug == "" {
		return c.String(http.StatusBadRequest, "Slug is required")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := processCard(src)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	dest, err := a.Cards.Save(slug, data)
	if err != nil {
		return err
	}
	c.Logger().Infof("og card written: %s", dest)

	msg := "Card saved: " + a.Cards.URL(slug)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}
