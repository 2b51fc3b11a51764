package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/centrifugal/centrifuge"
	"github.com/mgalli/ratiolens/internal/cache"
	"github.com/mgalli/ratiolens/internal/common"
	"github.com/mgalli/ratiolens/internal/loki"
	"github.com/mgalli/ratiolens/pkg/imdb"
	"github.com/mgalli/ratiolens/pkg/ratio"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stats represents statistical data including lookup and scrape counts in
// the last 24 hours and the most recently requested title.
type Stats struct {
	// LookupsCount24 represents the number of aspect-ratio lookups served in the last 24 hours.
	LookupsCount24 int `json:"lookupsCount24"`
	// ScrapesCount24 represents the number of upstream page scrapes within the last 24 hours.
	ScrapesCount24 int `json:"scrapesCount24"`
	// TitleInstant holds the title name for immediate reporting or broadcasting in statistical data.
	TitleInstant string `json:"titleInstant"`
}

// RatioService defines the operations the HTTP layer needs: aspect-ratio
// records, title metadata and the stats websocket.
type RatioService interface {
	// Handler handles incoming HTTP requests via a websocket handler
	http.Handler
	// GetAspectRatio retrieves the cached-or-fresh extraction record for an IMDb title id.
	GetAspectRatio(ctx context.Context, imdbID string) (*ratio.Result, error)
	// GetTitle retrieves name and year for an IMDb title id.
	GetTitle(ctx context.Context, imdbID string) (*imdb.Title, error)
	// BroadcastStats updates and publishes statistical data to a websocket channel.
	// Accepts a function to modify stats and returns an error if updating or publishing fails.
	BroadcastStats(statsUpdater func(stats *Stats) error) error
	// StartPollingStats begins the periodic fetching and broadcasting of statistical data at the specified interval.
	StartPollingStats(interval time.Duration)
}

type ratioService struct {
	statsWebsocketChannel string
	imdb                  imdb.IMDB
	store                 *cache.Cache
	loki                  loki.Loki
	ratioTTL              time.Duration
	titleTTL              time.Duration

	node             *centrifuge.Node
	websocketHandler *centrifuge.WebsocketHandler
	statsMutex       *sync.Mutex
	stats            Stats
}

// NewRatioService creates a new instance of RatioService with the provided
// IMDb client, cache store and loki client.
func NewRatioService(statsWebsocketChannel string, imdbClient imdb.IMDB, store *cache.Cache, lokiClient loki.Loki, ratioTTL, titleTTL time.Duration) RatioService {
	svc := &ratioService{
		statsWebsocketChannel: statsWebsocketChannel,
		imdb:                  imdbClient,
		store:                 store,
		loki:                  lokiClient,
		ratioTTL:              ratioTTL,
		titleTTL:              titleTTL,

		statsMutex: &sync.Mutex{},
	}

	node, err := centrifuge.New(centrifuge.Config{})
	if err != nil {
		common.Log.Error("Failed to centrifuge.New", "err", err)
		os.Exit(1)
	}
	svc.node = node

	node.OnConnecting(func(ctx context.Context, e centrifuge.ConnectEvent) (centrifuge.ConnectReply, error) {
		return centrifuge.ConnectReply{}, nil
	})

	node.OnConnect(func(client *centrifuge.Client) {
		client.OnSubscribe(func(e centrifuge.SubscribeEvent, cb centrifuge.SubscribeCallback) {
			if e.Channel != statsWebsocketChannel {
				cb(centrifuge.SubscribeReply{}, centrifuge.ErrorPermissionDenied)
				return
			}

			cb(centrifuge.SubscribeReply{
				Options: centrifuge.SubscribeOptions{},
			}, nil)

			// Todo: Avoid broadcasting to all clients
			go func() {
				err := svc.BroadcastStats(func(data *Stats) error { return nil })
				if err != nil {
					common.Log.Warn("Failed to internal.RatioService.BroadcastStats", "err", err)
				}
			}()
		})

	})

	if err := node.Run(); err != nil {
		common.Log.Error("Failed to centrifuge.Node.Run", "err", err)
		os.Exit(1)
	}

	websocketHandler := centrifuge.NewWebsocketHandler(node, centrifuge.WebsocketConfig{
		ReadBufferSize:     1024,
		UseWriteBufferPool: true,
	})
	svc.websocketHandler = websocketHandler

	return svc
}

// GetAspectRatio retrieves the extraction record for a title, serving it
// from the cache while the TTL holds and re-running the fetch+parse
// pipeline once it expires. Concurrent misses for the same id may both
// scrape and overwrite each other; records are idempotent per id within
// the TTL window, so last writer wins.
func (s *ratioService) GetAspectRatio(ctx context.Context, imdbID string) (*ratio.Result, error) {

	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "internal.RatioService.GetAspectRatio")
	defer span.End()

	cacheResult := "hit"
	cacheKey := fmt.Sprintf("imdb.aspectratio : %s", imdbID)
	result, err := cache.Memoize[ratio.Result](s.store, cacheKey, s.ratioTTL, func() (*ratio.Result, error) {

		cacheResult = "miss"
		document, pageURL, err := s.imdb.GetTechnicalPage(ctx, imdbID)
		if err != nil {
			return nil, fmt.Errorf("failed to imdb.IMDB.GetTechnicalPage: %w", err)
		}
		common.Log.InfoContext(ctx, "Fetched technical page", "id", imdbID, "bytes", len(document))

		return ratio.Extract(document, pageURL, time.Now())
	})
	span.SetAttributes(attribute.String("cache.imdb.aspectratio.result", cacheResult))
	if common.CacheGetsTotalIncr != nil {
		common.CacheGetsTotalIncr(ctx, "imdb.aspectratio", cacheResult)
	}
	// Hits never ran the pipeline, so only misses count as extractions.
	if cacheResult == "miss" && common.ExtractionsTotalIncr != nil {
		common.ExtractionsTotalIncr(ctx, extractionOutcome(err))
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("imdb.id", imdbID))
	span.SetAttributes(attribute.String("ratio.primary", result.AspectRatio))
	span.SetAttributes(attribute.Int("ratio.count", len(result.AllAspectRatios)))

	return result, nil
}

// GetTitle retrieves name and year for an IMDb title id, cached to spare
// the upstream site.
func (s *ratioService) GetTitle(ctx context.Context, imdbID string) (*imdb.Title, error) {

	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "internal.RatioService.GetTitle")
	defer span.End()

	cacheResult := "hit"
	cacheKey := fmt.Sprintf("imdb.title : %s", imdbID)
	title, err := cache.Memoize[imdb.Title](s.store, cacheKey, s.titleTTL, func() (*imdb.Title, error) {

		cacheResult = "miss"
		title, err := s.imdb.GetTitle(ctx, imdbID)
		if err != nil {
			return nil, fmt.Errorf("failed to imdb.IMDB.GetTitle: %w", err)
		}

		return title, nil
	})
	span.SetAttributes(attribute.String("cache.imdb.title.result", cacheResult))
	if common.CacheGetsTotalIncr != nil {
		common.CacheGetsTotalIncr(ctx, "imdb.title", cacheResult)
	}
	if err != nil {
		return nil, err
	}

	go func() {
		err := s.BroadcastStats(func(data *Stats) error {
			data.TitleInstant = title.Name
			return nil
		})
		if err != nil {
			common.Log.WarnContext(ctx, "Failed to internal.RatioService.BroadcastStats", "err", err)
		}
	}()

	return title, nil
}

// BroadcastStats updates and publishes statistical data to a websocket channel.
// Accepts a function to modify stats and returns an error if updating or publishing fails.
func (s *ratioService) BroadcastStats(statsUpdater func(stats *Stats) error) error {
	stats, err := func() (Stats, error) {
		s.statsMutex.Lock()
		defer s.statsMutex.Unlock()
		err := statsUpdater(&s.stats)
		if err != nil {
			return Stats{}, err
		}
		return s.stats, nil
	}()
	if err != nil {
		return fmt.Errorf("failed to statsUpdater: %w", err)
	}

	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to json.Marshal: %w", err)
	}

	_, err = s.node.Publish(s.statsWebsocketChannel, b, nil...)
	if err != nil {
		return fmt.Errorf("failed to centrifuge.Node.Publish: %w", err)
	}

	return nil
}

// StartPollingStats begins the periodic fetching and broadcasting of statistical data at the specified interval.
func (s *ratioService) StartPollingStats(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for ; true; <-ticker.C {
		lookups, err := s.loki.GetLookups24()
		if err != nil {
			common.Log.Error("failed to loki.Loki.GetLookups24", "err", err)
		}
		scrapes, err := s.loki.GetScrapes24()
		if err != nil {
			common.Log.Error("failed to loki.Loki.GetScrapes24", "err", err)
		}
		err = s.BroadcastStats(func(stats *Stats) error {
			if lookups != 0 {
				stats.LookupsCount24 = lookups
			}
			if scrapes != 0 {
				stats.ScrapesCount24 = scrapes
			}
			return nil
		})
		if err != nil {
			common.Log.Warn("failed to internal.RatioService.BroadcastStats", "err", err)
		}
	}
}

// ServeHTTP handles incoming HTTP requests via a websocket handler
func (s *ratioService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	newCtx := centrifuge.SetCredentials(ctx, &centrifuge.Credentials{})
	r = r.WithContext(newCtx)

	s.websocketHandler.ServeHTTP(w, r)
}

func extractionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ratio.ErrNotFound):
		return "not_found"
	default:
		return "upstream_error"
	}
}
