package mocks

import (
	"context"
	"net/http"

	"github.com/denchenko/userdir/internal/adapters/secondary/reqres"
	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of reqres.Transport.
type MockTransport struct {
	mock.Mock
}

// Send mocks the Send method.
func (m *MockTransport) Send(ctx context.Context, method, url string, header http.Header) (*reqres.Response, error) {
	args := m.Called(ctx, method, url, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*reqres.Response), args.Error(1)
}

// JSON builds a response with the given status and body.
func JSON(statusCode int, body string) *reqres.Response {
	return &reqres.Response{
		StatusCode: statusCode,
		Body:       []byte(body),
	}
}
