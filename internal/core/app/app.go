package app

import (
	"context"
	"fmt"

	"github.com/denchenko/userdir/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds GetUsersByIDs.
const maxConcurrentLookups = 4

// Repository defines the interface for user directory lookups (port).
type Repository interface {
	// GetUserByID returns the user and true, or false when the directory has no such user.
	GetUserByID(ctx context.Context, id int) (domain.User, bool, error)
	// GetAllUsers returns every user of the directory in listing order.
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

// App represents the core application with all business logic.
type App struct {
	repo Repository
}

// NewApp creates a new application instance.
func NewApp(repo Repository) *App {
	return &App{
		repo: repo,
	}
}

// GetUserByID retrieves a user by ID. The boolean is false when the user does not exist.
func (a *App) GetUserByID(ctx context.Context, id int) (domain.User, bool, error) {
	user, found, err := a.repo.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, found, nil
}

// GetAllUsers retrieves all users.
func (a *App) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := a.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}

	return users, nil
}

// GetUsersByIDs resolves several users concurrently and returns the lookups in input order.
// The first failure cancels the remaining lookups.
func (a *App) GetUsersByIDs(ctx context.Context, ids []int) ([]domain.Lookup, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	lookups := make([]domain.Lookup, len(ids))

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, found, err := a.repo.GetUserByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get user %d: %w", id, err)
			}

			lookups[i] = domain.Lookup{ID: id, User: user, Found: found}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return lookups, nil
}
