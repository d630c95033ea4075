package reqres

import (
	"context"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a single HTTP request.
// It returns an error only when no response was obtained; non-2xx statuses are returned as a Response.
type Transport interface {
	Send(ctx context.Context, method, url string, header http.Header) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, method, url string, header http.Header) (*Response, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, method, url string, header http.Header) (*Response, error) {
	return f(ctx, method, url, header)
}
