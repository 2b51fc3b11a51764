package imdb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	stalkr "github.com/StalkR/imdb"
	"github.com/mgalli/ratiolens/pkg/transport"
	"go.opentelemetry.io/otel/trace"
)

type client struct {
	httpClient *http.Client
	getTitle   func(c *http.Client, id string) (*stalkr.Title, error)
	baseURL    string
}

// NewClient creates a new instance of the IMDB client. Every outbound page
// fetch shares one throttled transport, so minFetchInterval is the global
// minimum spacing between requests to the site.
func NewClient(minFetchInterval time.Duration) IMDB {

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxConnsPerHost = 100
	t.MaxIdleConnsPerHost = 100

	rt := transport.NewModifyHeadersRoundTripper(t,
		transport.WithAcceptLanguage("en"), // avoid IP-based language detection
		transport.WithUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36"),
	)
	rt = transport.NewThrottleRoundTripper(rt, minFetchInterval)

	return &client{
		httpClient: &http.Client{
			Timeout:   time.Second * 15,
			Transport: rt,
		},
		getTitle: stalkr.NewTitle,
		baseURL:  "https://www.imdb.com",
	}
}

// GetTitle gets a Title by its ID.
func (c *client) GetTitle(ctx context.Context, imdbID string) (*Title, error) {

	_, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "imdb.IMDB.GetTitle")
	defer span.End()

	imdbResult, err := c.getTitle(c.httpClient, imdbID)
	if err != nil {
		return nil, fmt.Errorf("failed to client.getTitle: %w", err)
	}

	return &Title{
		Name: imdbResult.Name,
		Year: imdbResult.Year,
	}, nil
}
