package mocks

import (
	"context"

	"github.com/denchenko/userdir/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of app.Repository.
type MockRepository struct {
	mock.Mock
}

// GetUserByID mocks the GetUserByID method.
func (m *MockRepository) GetUserByID(ctx context.Context, id int) (domain.User, bool, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.User), args.Bool(1), args.Error(2)
}

// GetAllUsers mocks the GetAllUsers method.
func (m *MockRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.User), args.Error(1)
}
