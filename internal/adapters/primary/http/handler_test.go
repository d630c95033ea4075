package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/denchenko/userdir/internal/adapters/secondary/repository/mocks"
	"github.com/denchenko/userdir/internal/core/app"
	"github.com/denchenko/userdir/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServer_handleGetUser(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockRepository)
		expectedStatus int
		validate       func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "found",
			path: "/users/1",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetUserByID", mock.Anything, 1).Return(domain.User{
					ID:        1,
					Email:     "george.bluth@reqres.in",
					FirstName: "George",
					LastName:  "Bluth",
				}, true, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp UserResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.Data.ID)
				assert.Equal(t, "George", resp.Data.FirstName)
				assert.NotContains(t, rec.Body.String(), "avatar")
			},
		},
		{
			name: "absent",
			path: "/users/999",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetUserByID", mock.Anything, 999).Return(domain.User{}, false, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			path:           "/users/abc",
			setupMock:      func(*mocks.MockRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "upstream failure",
			path: "/users/1",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetUserByID", mock.Anything, 1).Return(domain.User{}, false,
					domain.NewExternalAPIError(domain.CauseTransport, "error fetching user with ID 1", errors.New("timeout")))
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "unexpected failure",
			path: "/users/1",
			setupMock: func(m *mocks.MockRepository) {
				m.On("GetUserByID", mock.Anything, 1).Return(domain.User{}, false, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockRepository{}
			tt.setupMock(repo)
			server := NewServer(":0", app.NewApp(repo), nil)

			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.validate != nil {
				tt.validate(t, rec)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServer_handleListUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mocks.MockRepository{}
		repo.On("GetAllUsers", mock.Anything).Return([]domain.User{
			{ID: 1, Email: "user1@example.com"},
			{ID: 2, Email: "user2@example.com", Avatar: "https://reqres.in/img/faces/2-image.jpg"},
		}, nil)
		server := NewServer(":0", app.NewApp(repo), nil)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, 2, resp.Data[1].ID)
		assert.Equal(t, "https://reqres.in/img/faces/2-image.jpg", resp.Data[1].Avatar)
	})

	t.Run("empty listing encodes as empty array", func(t *testing.T) {
		repo := &mocks.MockRepository{}
		repo.On("GetAllUsers", mock.Anything).Return([]domain.User{}, nil)
		server := NewServer(":0", app.NewApp(repo), nil)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[],"total":0}`, rec.Body.String())
	})

	t.Run("upstream failure", func(t *testing.T) {
		repo := &mocks.MockRepository{}
		repo.On("GetAllUsers", mock.Anything).
			Return(nil, domain.NewExternalAPIError(domain.CauseDecode, "invalid data received for users", errors.New("bad json")))
		server := NewServer(":0", app.NewApp(repo), nil)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"error":"failed to list users"}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		server := NewServer(":0", app.NewApp(&mocks.MockRepository{}), nil)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
