package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"invoice-service/internal/adapter/cache"
	domain "invoice-service/internal/domain/user"
	"invoice-service/internal/usecase/auth"
)

// CachedUserRepository implements auth.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation. The
// email lookup is the login hot path, so that is what gets cached.
type CachedUserRepository struct {
	dbRepo auth.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo auth.Repository, cache cache.UserCache, log *zap.Logger) auth.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository and drops any stale cache entry for
// the email.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, u.Email); err != nil {
			r.log.Warn("failed to invalidate cache after create", zap.String("email", u.Email), zap.Error(err))
		}
	}

	return id, nil
}

// GetByEmail retrieves a user using the cache-aside pattern. Concurrent
// misses for the same email collapse into a single database read.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, email)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("email", email), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.String("email", email))
			return cachedUser, nil
		}
	}

	key := fmt.Sprintf("user:email:%s", email)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Another request may have populated the cache while we waited.
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, email)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}

		// Absent users are not cached; registration must always see the
		// store's answer.
		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("email", email), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	return u, nil
}

// GetByID delegates to the DB repository.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.dbRepo.GetByID(ctx, id)
}
