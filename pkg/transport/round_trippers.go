// Package transport carries the http.RoundTripper decorators shared by the
// outbound clients: header shaping for scrape-friendly requests and a
// global minimum-interval throttle toward the upstream site.
package transport

import (
	"net/http"
	"sync"
	"time"
)

// ModifyHeadersOption is a function type used to modify HTTP headers in a
// request. It takes a function that sets a header key and value, allowing
// for flexible header modification.
type ModifyHeadersOption func(func(key string, value string))

type modifyHeadersRoundTripper struct {
	roundTripper http.RoundTripper
	options      []ModifyHeadersOption
}

// NewModifyHeadersRoundTripper will add headers to a request.
func NewModifyHeadersRoundTripper(rt http.RoundTripper, opts ...ModifyHeadersOption) http.RoundTripper {
	return &modifyHeadersRoundTripper{roundTripper: rt, options: opts}
}

func (rt *modifyHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, opt := range rt.options {
		opt(req.Header.Set)
	}
	return rt.roundTripper.RoundTrip(req)
}

// WithUserAgent is a functional option to set the HTTP client user agent.
func WithUserAgent(userAgent string) ModifyHeadersOption {
	return func(f func(key string, value string)) {
		f("User-Agent", userAgent)
	}
}

// WithAcceptLanguage is a functional option to set the HTTP client accept language.
func WithAcceptLanguage(acceptLanguage string) ModifyHeadersOption {
	return func(f func(key string, value string)) {
		f("Accept-Language", acceptLanguage)
	}
}

type throttleRoundTripper struct {
	roundTripper http.RoundTripper
	minInterval  time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottleRoundTripper enforces a minimum interval between requests sent
// through it. A request arriving early is delayed until its slot comes up,
// never rejected; there is no queue beyond the single delay. Safe for use
// from concurrent requests.
func NewThrottleRoundTripper(rt http.RoundTripper, minInterval time.Duration) http.RoundTripper {
	return &throttleRoundTripper{roundTripper: rt, minInterval: minInterval}
}

func (rt *throttleRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.reserve(req)
	return rt.roundTripper.RoundTrip(req)
}

// reserve claims the next send slot and sleeps until it arrives, honoring
// request-context cancellation while waiting.
func (rt *throttleRoundTripper) reserve(req *http.Request) {
	rt.mu.Lock()
	now := time.Now()
	next := rt.last.Add(rt.minInterval)
	if next.Before(now) {
		next = now
	}
	rt.last = next
	rt.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-req.Context().Done():
	}
}
