package sources

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTP downloads a weather log export from a URL.
type HTTP struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTP creates a source for url. The circuit breaker is shared by every
// Open call on the returned source.
func NewHTTP(name, url string, client *http.Client) *HTTP {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTP{
		name: name,
		url:  url,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// WithBackoff replaces the retry settings.
func (s *HTTP) WithBackoff(b BackoffConfig) *HTTP {
	s.httpCfg.Backoff = b
	return s
}

func (s *HTTP) Name() string {
	return s.name
}

func (s *HTTP) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/tab-separated-values, text/plain")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (s *HTTP) String() string {
	return s.url
}
