package imdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wlynxg/chardet"
	"github.com/wlynxg/chardet/consts"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// maxDocumentSize caps how much of the technical page is read. Real pages
// sit well under this; anything larger is not the page we expect.
const maxDocumentSize = 2 * 1024 * 1024

// GetTechnicalPage fetches the technical-specs page of a title and returns
// its markup decoded to UTF-8 together with the page URL. Non-success
// responses surface as a *StatusError.
func (c *client) GetTechnicalPage(ctx context.Context, imdbID string) (string, string, error) {

	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "imdb.IMDB.GetTechnicalPage")
	defer span.End()

	pageURL := fmt.Sprintf("%s/title/%s/technical/", c.baseURL, imdbID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", pageURL, fmt.Errorf("failed to http.NewRequestWithContext: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", pageURL, fmt.Errorf("failed to http.Client.Do: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", pageURL, &StatusError{StatusCode: res.StatusCode}
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, LimitReader(res.Body, maxDocumentSize, ErrReadBeyondLimit)); err != nil {
		return "", pageURL, fmt.Errorf("failed to io.Copy with LimitReader: %w", err)
	}
	raw := buf.Bytes()

	switch chardet.Detect(raw).Encoding {
	case consts.ISO88591:
		return decodeWith(charmap.ISO8859_1, raw, pageURL)
	case consts.Windows1252:
		return decodeWith(charmap.Windows1252, raw, pageURL)
	default:
		return string(raw), pageURL, nil
	}
}

func decodeWith(cm *charmap.Charmap, raw []byte, pageURL string) (string, string, error) {
	decoded, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return "", pageURL, fmt.Errorf("failed to transform.Bytes: %w", err)
	}
	return string(decoded), pageURL, nil
}
