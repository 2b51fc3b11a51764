package transport_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mgalli/ratiolens/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func TestModifyHeadersRoundTripper(t *testing.T) {
	mockRT := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "TestAgent", req.Header.Get("User-Agent"))
			assert.Equal(t, "en-US", req.Header.Get("Accept-Language"))
			return nil, nil
		},
	}

	rt := transport.NewModifyHeadersRoundTripper(mockRT,
		transport.WithUserAgent("TestAgent"),
		transport.WithAcceptLanguage("en-US"))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	_, _ = rt.RoundTrip(req)
}

func TestThrottleRoundTripperDelaysSecondRequest(t *testing.T) {
	var timestamps []time.Time
	mockRT := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			timestamps = append(timestamps, time.Now())
			return nil, nil
		},
	}

	interval := 50 * time.Millisecond
	rt := transport.NewThrottleRoundTripper(mockRT, interval)

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	_, _ = rt.RoundTrip(req)
	_, _ = rt.RoundTrip(req)

	require.Len(t, timestamps, 2)
	assert.GreaterOrEqual(t, timestamps[1].Sub(timestamps[0]), interval)
}

func TestThrottleRoundTripperFirstRequestImmediate(t *testing.T) {
	mockRT := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			return nil, nil
		},
	}

	rt := transport.NewThrottleRoundTripper(mockRT, time.Minute)

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	start := time.Now()
	_, _ = rt.RoundTrip(req)
	assert.Less(t, time.Since(start), time.Second)
}
