package internal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgalli/ratiolens/internal/common"
	"github.com/mgalli/ratiolens/pkg/badge"
	"github.com/mgalli/ratiolens/pkg/imdb"
	"github.com/mgalli/ratiolens/pkg/ratio"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var manifest = badge.Manifest{
	ID:          "dev.ratiolens.addon",
	Version:     "0.1.0",
	Name:        "RatioLens",
	Description: "Aspect-ratio badges for film catalog pages",
	IDPrefixes:  []string{"tt"},
	Resources:   []string{"aspect-ratio", "badge", "title"},
}

// App represents the main application structure that holds the ratio service and addon host information.
type App struct {
	RatioService RatioService
	AddonHost    string
}

/*
NewApp creates a new instance of the App struct.

Parameters:
  - ratioService: The service used to resolve aspect-ratio records.
  - addonHost: The host address for the addon.

Returns:
  - A pointer to the newly created App instance.
*/
func NewApp(ratioService RatioService, addonHost string) (*App, error) {
	return &App{
		RatioService: ratioService,
		AddonHost:    addonHost,
	}, nil
}

/*
ManifestHandler serves the manifest for the addon.

This method writes the manifest as a JSON response to the HTTP writer.
*/
func (a *App) ManifestHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "ManifestHandler")

	w.Header().Set("Content-Type", "application/json")

	b, _ := json.Marshal(manifest)
	_, err := w.Write(b)
	if err != nil {
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		span.RecordError(err)
		return
	}
}

/*
AspectRatioHandler handles requests for the full extraction record of a title.

This method validates the title id, resolves the record through the ratio
service and writes it as a JSON response. A title whose technical page lists
no parsable ratio is a 404, an upstream fetch failure a 502.
*/
func (a *App) AspectRatioHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "AspectRatioHandler")

	imdbID := chi.URLParam(r, "id")
	if err := common.ValidateIMDBTitleID(imdbID); err != nil {
		common.Log.WarnContext(ctx, "Failed to common.ValidateIMDBTitleID", "err", err)
		span.RecordError(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("param.id", imdbID))

	result, err := a.RatioService.GetAspectRatio(ctx, imdbID)
	if err != nil {
		a.writeExtractionError(w, r, err)
		return
	}

	// Records barely change within their TTL; let CDNs keep them for a day.
	w.Header().Set("CDN-Cache-Control", "public, max-age=86400")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		span.RecordError(err)
		return
	}
}

/*
BadgeHandler handles requests for the compact badge projection of a title.

Same resolution path as AspectRatioHandler, but the response carries only
what the on-page badge renders.
*/
func (a *App) BadgeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "BadgeHandler")

	imdbID := chi.URLParam(r, "id")
	if err := common.ValidateIMDBTitleID(imdbID); err != nil {
		common.Log.WarnContext(ctx, "Failed to common.ValidateIMDBTitleID", "err", err)
		span.RecordError(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("param.id", imdbID))

	result, err := a.RatioService.GetAspectRatio(ctx, imdbID)
	if err != nil {
		a.writeExtractionError(w, r, err)
		return
	}

	w.Header().Set("CDN-Cache-Control", "public, max-age=86400")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(badge.FromResult(result)); err != nil {
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		span.RecordError(err)
		return
	}
}

/*
TitleHandler handles requests for a title's name and year.

This method validates the title id, resolves the title through the ratio
service and writes it as a JSON response.
*/
func (a *App) TitleHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "TitleHandler")

	imdbID := chi.URLParam(r, "id")
	if err := common.ValidateIMDBTitleID(imdbID); err != nil {
		common.Log.WarnContext(ctx, "Failed to common.ValidateIMDBTitleID", "err", err)
		span.RecordError(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("param.id", imdbID))

	title, err := a.RatioService.GetTitle(ctx, imdbID)
	if err != nil {
		common.Log.ErrorContext(ctx, "Failed to RatioService.GetTitle", "err", err)
		span.RecordError(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(badge.TitleInfo{Name: title.Name, Year: title.Year}); err != nil {
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		span.RecordError(err)
		return
	}
}

// WebsocketHandler handles WebSocket connections
func (a *App) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	common.Log.DebugContext(ctx, "WebsocketHandler")

	a.RatioService.ServeHTTP(w, r)
}

// writeExtractionError maps pipeline failures onto the HTTP surface:
// NotFound is a neutral 404 the client renders as "N/A", an upstream
// non-success response becomes a 502 carrying the upstream status, and
// anything else a plain 500. No retry is signaled in any case.
func (a *App) writeExtractionError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)

	w.Header().Set("Content-Type", "application/json")

	if errors.Is(err, ratio.ErrNotFound) {
		common.Log.InfoContext(ctx, "Aspect ratio not found")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": ratio.ErrNotFound.Error()})
		return
	}

	var statusErr *imdb.StatusError
	if errors.As(err, &statusErr) {
		common.Log.WarnContext(ctx, "Upstream fetch failed", "status", statusErr.StatusCode)
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error":          "upstream fetch failed",
			"upstreamStatus": statusErr.StatusCode,
		})
		return
	}

	common.Log.ErrorContext(ctx, "Failed to RatioService.GetAspectRatio", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
}
