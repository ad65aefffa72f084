package ogengine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.UnixMilli(1700000000123)
}

func newTestValidator(timeout time.Duration) *ImageValidator {
	v := NewImageValidator(nil, timeout, testDefaults.Image, newTestLogger())
	v.now = fixedClock
	return v
}

func TestImageValidatorKeepsReachableImage(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	img := srv.URL + "/villa.jpg"
	got := newTestValidator(time.Second).Validate(context.Background(), img)
	if want := img + "?t=1700000000123"; got != want {
		t.Errorf("Validate = %q, want %q", got, want)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("method = %s, want HEAD", gotMethod)
	}
	if gotQuery != "t=1700000000123" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestImageValidatorAppendsToExistingQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	img := srv.URL + "/render/image?width=1200"
	got := newTestValidator(time.Second).Validate(context.Background(), img)
	if want := img + "&t=1700000000123"; got != want {
		t.Errorf("Validate = %q, want %q", got, want)
	}
}

func TestImageValidatorReplacesMissingImage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	got := newTestValidator(time.Second).Validate(context.Background(), srv.URL+"/gone.jpg")
	if got != testDefaults.Image {
		t.Errorf("Validate = %q, want default %q", got, testDefaults.Image)
	}
}

func TestImageValidatorReplacesSlowImage(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	got := newTestValidator(30*time.Millisecond).Validate(context.Background(), srv.URL+"/slow.jpg")
	if got != testDefaults.Image {
		t.Errorf("Validate = %q, want default", got)
	}
}

func TestImageValidatorReplacesInvalidURL(t *testing.T) {
	got := newTestValidator(time.Second).Validate(context.Background(), "a.jpg")
	if got != testDefaults.Image {
		t.Errorf("Validate = %q, want default", got)
	}
}
