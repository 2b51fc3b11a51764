// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every runtime knob the service reads. Values come from the
// environment only; there is no file-based configuration.
type Config struct {
	// AddonHost is the public (external) base URL where the addon is
	// accessible. It is used for any links requiring the addon host address.
	AddonHost string `env:"ADDON_HOST" envDefault:"http://127.0.0.1:3593"`
	// ServerListenAddr specifies the network address the HTTP server
	// listens on.
	ServerListenAddr string `env:"SERVER_LISTEN_ADDR" envDefault:":3593"`
	// CachePath is the directory of the on-disk extraction cache.
	CachePath string `env:"CACHE_PATH" envDefault:".cache"`
	// RatioCacheTTL is how long an extraction record stays valid before a
	// fresh fetch replaces it.
	RatioCacheTTL time.Duration `env:"RATIO_CACHE_TTL" envDefault:"720h"`
	// TitleCacheTTL is how long a resolved title name/year stays valid.
	TitleCacheTTL time.Duration `env:"TITLE_CACHE_TTL" envDefault:"48h"`
	// MinFetchInterval is the global minimum spacing between outbound
	// requests to the upstream site.
	MinFetchInterval time.Duration `env:"MIN_FETCH_INTERVAL" envDefault:"2s"`
	// Environment names the deployment environment (lcl, dk, prd).
	Environment string `env:"ENVIRONMENT" envDefault:"lcl"`
	// OtelExporterEndpoint is the OTLP gRPC endpoint for logs, traces and
	// metrics.
	OtelExporterEndpoint string `env:"OTEL_EXPORTER_ENDPOINT" envDefault:"127.0.0.1:4317"`
	// LokiHost is the Grafana Loki base URL the stats poller queries.
	LokiHost string `env:"LOKI_HOST" envDefault:"http://127.0.0.1:3100"`
	// StatsWebsocketChannel is the channel stats are broadcast on.
	StatsWebsocketChannel string `env:"STATS_WEBSOCKET_CHANNEL" envDefault:"stats"`
	// StatsPollingInterval is how often the 24h counters are refreshed.
	StatsPollingInterval time.Duration `env:"STATS_POLLING_INTERVAL" envDefault:"1m"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to env.Parse: %w", err)
	}

	u, err := url.Parse(cfg.AddonHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ADDON_HOST: %w", err)
	}
	cfg.AddonHost = fmt.Sprintf("%s://%s", u.Scheme, u.Host)

	return cfg, nil
}
