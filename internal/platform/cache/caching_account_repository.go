// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// CachingAccountRepository decorates an AccountRepository with Redis caching
// of email lookups, the hot path for login. It implements the decorator
// pattern, transparently adding caching without modifying the underlying
// repository.
//
// Only positive lookups are cached: accounts are never mutated or deleted,
// so a cached entry cannot go stale, while caching misses would let a
// concurrent registration be shadowed until the TTL ran out.
type CachingAccountRepository struct {
	inner     usecase.AccountRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingAccountRepositoryがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*CachingAccountRepository)(nil)

// DefaultTTL is the cache entry lifetime used when none is configured.
const DefaultTTL = 5 * time.Minute

// NewCachingAccountRepository decorates an AccountRepository with Redis caching.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses "accounts".
func NewCachingAccountRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AccountRepository, namespace string) *CachingAccountRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "accounts"
	}
	return &CachingAccountRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the account and warms the email cache entry.
func (c *CachingAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	// First create in the underlying repository (PostgreSQL)
	if err := c.inner.Create(ctx, a); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Warm the cache for the register-then-login path (best effort)
	if b, err := json.Marshal(a); err == nil {
		_ = c.rdb.Set(ctx, c.emailKey(a.Email), b, c.ttl).Err()
	}
	return nil
}

// FindByEmail retrieves an account, checking cache first then falling back to the database.
func (c *CachingAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByEmail(ctx, email)
	}

	key := c.emailKey(email)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Account
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID delegates to the underlying repository. ID lookups are off the
// login hot path, so they are not cached.
func (c *CachingAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	return c.inner.FindByID(ctx, id)
}

// emailKey generates the cache key for an email lookup.
func (c *CachingAccountRepository) emailKey(email string) string {
	return fmt.Sprintf("%s:email:%s", c.namespace, safe(email))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
