package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/denchenko/userdir/internal/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Send(t *testing.T) {
	var gotAccept, gotRequestID, gotMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(requestIDHeader)
		gotMethod = r.Method

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer server.Close()

	m := metrics.NewNop()
	tr := NewHTTPTransport(Options{Timeout: time.Second, Metrics: m})

	header := http.Header{}
	header.Set("Accept", "application/json")

	resp, err := tr.Send(context.Background(), http.MethodGet, server.URL+"/users/1", header)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":{"id":1}}`, string(resp.Body))
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "application/json", gotAccept)
	_, err = uuid.Parse(gotRequestID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("200")), 0)
}

func TestHTTPTransport_ErrorStatusIsReturned(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "too many requests", status: http.StatusTooManyRequests},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			tr := NewHTTPTransport(Options{Timeout: time.Second})

			resp, err := tr.Send(context.Background(), http.MethodGet, server.URL, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestHTTPTransport_Retries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(Options{Timeout: time.Second, RetryMax: 2})
	tr.client.RetryWaitMin = time.Millisecond
	tr.client.RetryWaitMax = time.Millisecond

	resp, err := tr.Send(context.Background(), http.MethodGet, server.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPTransport_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	m := metrics.NewNop()
	tr := NewHTTPTransport(Options{Timeout: time.Second, Metrics: m})

	resp, err := tr.Send(context.Background(), http.MethodGet, url, nil)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("error")), 0)
}

func TestHTTPTransport_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr := NewHTTPTransport(Options{Timeout: time.Second, RateLimit: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Send(ctx, http.MethodGet, server.URL, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPTransport_BodyIsCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", maxResponseSize+100)))
	}))
	defer server.Close()

	tr := NewHTTPTransport(Options{Timeout: time.Second})

	resp, err := tr.Send(context.Background(), http.MethodGet, server.URL, nil)

	require.NoError(t, err)
	assert.Len(t, resp.Body, maxResponseSize)
}
