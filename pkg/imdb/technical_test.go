package imdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestGetTechnicalPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.RequestURI == "/title/tt0133093/technical/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body><tr><td>Aspect Ratio</td><td>2.39 : 1</td></tr></body></html>"))
		} else {
			t.Fatalf("unexpected request %v", r)
		}
	}))
	defer server.Close()

	c := &client{
		httpClient: &http.Client{},
		baseURL:    server.URL,
	}

	document, pageURL, err := c.GetTechnicalPage(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if pageURL != server.URL+"/title/tt0133093/technical/" {
		t.Errorf("unexpected page URL %q", pageURL)
	}
	if !strings.Contains(document, "2.39 : 1") {
		t.Errorf("expected document to carry the ratio row, got %q", document)
	}
}

func TestGetTechnicalPageStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := &client{
		httpClient: &http.Client{},
		baseURL:    server.URL,
	}

	_, _, err := c.GetTechnicalPage(context.Background(), "tt0133093")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", statusErr.StatusCode)
	}
}

func TestGetTechnicalPageDecodesLatin1(t *testing.T) {
	latin1Body, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), []byte("<html><body>Amélie, aspect ratio 2.35 : 1, naïve café résumé</body></html>"))
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(latin1Body)
	}))
	defer server.Close()

	c := &client{
		httpClient: &http.Client{},
		baseURL:    server.URL,
	}

	document, _, err := c.GetTechnicalPage(context.Background(), "tt0211915")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(document, "Amélie") {
		t.Errorf("expected decoded UTF-8 document, got %q", document)
	}
}
