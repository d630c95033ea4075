package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/denchenko/userdir/internal/adapters/secondary/reqres"
	"github.com/denchenko/userdir/internal/log"
	"github.com/denchenko/userdir/internal/metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	maxResponseSize = 1 << 20 // 1MB
	requestIDHeader = "X-Request-Id"
)

// Options configures an HTTPTransport.
type Options struct {
	// Timeout bounds a single attempt, including reading the body.
	Timeout time.Duration
	// RetryMax is the number of retries after the first attempt. Zero disables retries.
	RetryMax int
	// RateLimit caps outbound requests per second. Zero or less means unlimited.
	RateLimit float64
	// Metrics receives request counts and latencies. Optional.
	Metrics *metrics.Metrics
}

// HTTPTransport implements reqres.Transport over net/http.
type HTTPTransport struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

var _ reqres.Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a new HTTP transport.
func NewHTTPTransport(opts Options) *HTTPTransport {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = opts.Timeout

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.RetryMax = opts.RetryMax
	client.Logger = leveledLogger{}
	// Hand every response back as-is; status classification belongs to the caller.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.NewNop()
	}

	return &HTTPTransport{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		metrics: m,
	}
}

// Send issues the request and reads the whole response body.
func (t *HTTPTransport) Send(ctx context.Context, method, url string, header http.Header) (*reqres.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()

	resp, err := t.client.Do(req)
	if err != nil {
		t.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		log.Debugf("%s %s request_id=%s failed after %s: %v", method, url, requestID, time.Since(start), err)

		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		t.metrics.UpstreamRequests.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	elapsed := time.Since(start)
	t.metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	t.metrics.UpstreamRequestDuration.Observe(elapsed.Seconds())
	log.Debugf("%s %s request_id=%s status=%d took=%s", method, url, requestID, resp.StatusCode, elapsed)

	return &reqres.Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// leveledLogger routes retryablehttp logs to the debug level.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...any) { log.Debugf("%s %v", msg, keysAndValues) }
func (leveledLogger) Info(msg string, keysAndValues ...any)  { log.Debugf("%s %v", msg, keysAndValues) }
func (leveledLogger) Debug(msg string, keysAndValues ...any) { log.Debugf("%s %v", msg, keysAndValues) }
func (leveledLogger) Warn(msg string, keysAndValues ...any)  { log.Debugf("%s %v", msg, keysAndValues) }
