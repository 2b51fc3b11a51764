package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/mgalli/ratiolens/internal"
	"github.com/mgalli/ratiolens/internal/cache"
	"github.com/mgalli/ratiolens/internal/common"
	"github.com/mgalli/ratiolens/internal/config"
	"github.com/mgalli/ratiolens/internal/loki"
	"github.com/mgalli/ratiolens/pkg/imdb"
	slogchi "github.com/samber/slog-chi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName    = "ratiolens"
	serviceVersion = "0.1.0"
)

func main() {

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to config.Load:", err)
	}

	loggerShutdown, err := common.InitLogger(serviceName, serviceVersion, cfg.Environment, cfg.OtelExporterEndpoint)
	if err != nil {
		log.Fatal("Failed to common.InitLogger:", err)
	}

	instrumentationShutdown, err := common.InitInstrumentation(serviceName, serviceVersion, cfg.Environment, cfg.OtelExporterEndpoint)
	if err != nil {
		common.Log.Error("Failed to common.InitInstrumentation", "err", err)
		os.Exit(1)
	}

	store, err := cache.Open(cfg.CachePath, common.Log)
	if err != nil {
		common.Log.Error("Failed to cache.Open", "err", err)
		os.Exit(1)
	}

	imdbClient := imdb.NewClient(cfg.MinFetchInterval)
	lokiClient := loki.NewLoki(cfg.LokiHost)

	svc := internal.NewRatioService(cfg.StatsWebsocketChannel, imdbClient, store, lokiClient, cfg.RatioCacheTTL, cfg.TitleCacheTTL)
	go svc.StartPollingStats(cfg.StatsPollingInterval)

	app, err := internal.NewApp(svc, cfg.AddonHost)
	if err != nil {
		common.Log.Error("Failed to internal.NewApp", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(slogchi.New(common.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Requested-With",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
			"Content-Language",
			"Origin",
		},
		MaxAge: 300,
	}))
	r.Get("/manifest.json", app.ManifestHandler)
	r.Get("/aspect-ratio/{id}", app.AspectRatioHandler)
	r.Get("/badge/{id}", app.BadgeHandler)
	r.Get("/title/{id}", app.TitleHandler)
	r.Get("/ws", app.WebsocketHandler)

	srv := &http.Server{
		Addr:    cfg.ServerListenAddr,
		Handler: otelhttp.NewHandler(r, "server"),
	}
	go func() {
		common.Log.Info("Listening", "addr", cfg.ServerListenAddr)
		common.Log.Info("Badge endpoint", "url", cfg.AddonHost+"/badge/{id}")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.Log.Error("Failed to http.Server.ListenAndServe", "err", err)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.Log.Error("Failed to http server shutdown", "err", err)
	}

	if err := store.Close(); err != nil {
		common.Log.Error("Failed to cache.Cache.Close", "err", err)
	}

	instrumentationShutdown(ctx)
	if err := loggerShutdown(ctx); err != nil {
		log.Println("Failed to logger shutdown:", err)
	}

	log.Println("Bye!")
}
