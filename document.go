package ogengine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDocumentSize bounds how much of index.html is read.
const maxDocumentSize = 2 << 20

// DocumentFetcher retrieves the deployed SPA shell from the origin.
type DocumentFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewDocumentFetcher creates a fetcher. A nil client means http.DefaultClient.
func NewDocumentFetcher(client *http.Client, timeout time.Duration) *DocumentFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &DocumentFetcher{client: client, timeout: timeout}
}

// Fetch returns the body of <origin>/index.html. Anything other than a 200
// response within the timeout is an error.
func (f *DocumentFetcher) Fetch(ctx context.Context, origin string) (string, error) {
	endpoint := strings.TrimRight(origin, "/") + "/index.html"
	return Bounded(ctx, f.timeout, "", func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "text/html")
		resp, err := f.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetch %s: unexpected status %d", endpoint, resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", endpoint, err)
		}
		return string(body), nil
	})
}
