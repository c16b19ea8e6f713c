package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
)

// NewAccountRepository creates an AccountRepository implementation.
// If Redis is available, the PostgreSQL repository is wrapped with a
// lookup cache. Otherwise, it is used directly.
func NewAccountRepository(rdb *redis.Client, db *gorm.DB, cacheTTL time.Duration) usecase.AccountRepository {
	repo := authadapters.NewAccountPostgres(db)
	if rdb != nil {
		return cache.NewCachingAccountRepository(rdb, cacheTTL, repo, "accounts")
	}
	return repo
}
