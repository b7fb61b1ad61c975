package gateway

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient implements Client on top of go-resty.
type RestyClient struct {
	client *resty.Client
	logger *slog.Logger
}

// NewRestyClient creates a RestyClient. timeout bounds each request; zero
// leaves the transport default in place. Retries stay disabled.
//
// The transport speaks HTTP/1.1 only: rate-limit detection reads the status
// line's reason phrase, and HTTP/2 responses carry none.
func NewRestyClient(timeout time.Duration, logger *slog.Logger) *RestyClient {
	c := resty.New().
		SetTransport(newHTTP1Transport()).
		SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c, logger: logger}
}

func newHTTP1Transport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     false,
		TLSNextProto:          map[string]func(string, *tls.Conn) http.RoundTripper{},
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Get sends a GET request to url with the given headers.
func (c *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	for name, value := range headers {
		c.logger.Debug("adding header to upstream request",
			slog.String("header", name),
			slog.String("value", value),
		)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("gateway: GET %s: %w", url, err)
	}

	c.logger.Debug("upstream request complete",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("duration", resp.Time()),
	)

	return &Response{
		StatusCode:   resp.StatusCode(),
		ReasonPhrase: ReasonPhrase(resp.Status(), resp.StatusCode()),
		Header:       resp.Header(),
		Body:         resp.Body(),
	}, nil
}
