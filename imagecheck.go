package ogengine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ImageValidator confirms a social image is reachable before it is
// advertised, swapping in the site default when it is not.
type ImageValidator struct {
	client       *http.Client
	timeout      time.Duration
	defaultImage string
	logger       echo.Logger
	now          func() time.Time
}

// NewImageValidator creates a validator. A nil client means http.DefaultClient.
func NewImageValidator(client *http.Client, timeout time.Duration, defaultImage string, logger echo.Logger) *ImageValidator {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageValidator{
		client:       client,
		timeout:      timeout,
		defaultImage: defaultImage,
		logger:       logger,
		now:          time.Now,
	}
}

// Validate returns imageURL with a t=<epoch millis> cache-buster when a HEAD
// request for it succeeds with a 2xx status, and the default image otherwise.
func (v *ImageValidator) Validate(ctx context.Context, imageURL string) string {
	busted := withCacheBuster(imageURL, v.now())
	_, err := Bounded(ctx, v.timeout, struct{}{}, func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, busted, nil)
		if err != nil {
			return struct{}{}, err
		}
		resp, err := v.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return struct{}{}, fmt.Errorf("status %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	if err != nil {
		if v.logger != nil {
			v.logger.Warnf("og image %s unusable, using default: %v", imageURL, err)
		}
		return v.defaultImage
	}
	return busted
}
