package cached

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/denchenko/userdir/internal/adapters/secondary/cache"
	"github.com/denchenko/userdir/internal/core/app"
	"github.com/denchenko/userdir/internal/core/domain"
	"github.com/denchenko/userdir/internal/log"
	"github.com/denchenko/userdir/internal/metrics"
)

const (
	// AllUsersKey holds the aggregated listing. It has no "user:" prefix and cannot collide with UserKey.
	AllUsersKey = "all_users"

	resourceUser     = "user"
	resourceAllUsers = "all_users"
)

// UserKey returns the cache key of a single user.
func UserKey(id int) string {
	return "user:" + strconv.Itoa(id)
}

// CachedRepository wraps a Repository with caching functionality.
type CachedRepository struct {
	repo    app.Repository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCachedRepository creates a new cached repository instance.
func NewCachedRepository(repo app.Repository, cache cache.Cache, ttl time.Duration, m *metrics.Metrics) *CachedRepository {
	if m == nil {
		m = metrics.NewNop()
	}

	return &CachedRepository{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
	}
}

// GetUserByID gets a user from cache or fetches it from the repository.
// Absent users are not cached.
func (r *CachedRepository) GetUserByID(ctx context.Context, id int) (domain.User, bool, error) {
	key := UserKey(id)

	if cached, ok := r.cache.Get(key); ok {
		if user, ok := cached.(domain.User); ok {
			log.Infof("Retrieved user %d from cache", id)
			r.metrics.CacheHit(resourceUser)

			return user, true, nil
		}
	}

	r.metrics.CacheMiss(resourceUser)

	user, found, err := r.repo.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !found {
		return domain.User{}, false, nil
	}

	r.cache.Set(key, user, r.ttl)

	return user, true, nil
}

// GetAllUsers gets the full listing from cache or fetches every page from the repository.
// Only a complete listing is ever cached.
func (r *CachedRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if cached, ok := r.cache.Get(AllUsersKey); ok {
		if users, ok := cached.([]domain.User); ok {
			log.Infof("Retrieved all users from cache")
			r.metrics.CacheHit(resourceAllUsers)

			return slices.Clone(users), nil
		}
	}

	r.metrics.CacheMiss(resourceAllUsers)

	users, err := r.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}

	r.cache.Set(AllUsersKey, slices.Clone(users), r.ttl)

	return users, nil
}
