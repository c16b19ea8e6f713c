package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// mockAccountRepository はテスト用のAccountRepositoryモック実装です。
type mockAccountRepository struct {
	createFn      func(ctx context.Context, account *entity.Account) error
	findByEmailFn func(ctx context.Context, email string) (*entity.Account, error)
	findByIDFn    func(ctx context.Context, id uint) (*entity.Account, error)
}

// Create はモックのCreate関数を呼び出します。
func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

// FindByEmail はモックのFindByEmail関数を呼び出します。
func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, usecase.ErrAccountNotFound
}

// FindByID はモックのFindByID関数を呼び出します。
func (m *mockAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrAccountNotFound
}

// TestNewCachingAccountRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingAccountRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       DefaultTTL,
			expectedNamespace: "accounts",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       DefaultTTL,
			expectedNamespace: "accounts",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingAccountRepository(nil, tt.ttl, &mockAccountRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingAccountRepository_FindByEmail_NilRedis はRedisがnilの場合に
// キャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingAccountRepository_FindByEmail_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.Account{ID: 1, Email: "test@example.com", PasswordDigest: "digest"}

	inner := &mockAccountRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingAccountRepository(nil, 5*time.Minute, inner, "accounts")

	account, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != expected.Email {
		t.Errorf("expected email %q, got %q", expected.Email, account.Email)
	}
}

// TestCachingAccountRepository_FindByEmail_CacheHit はキャッシュヒット時に
// Redisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingAccountRepository_FindByEmail_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := &entity.Account{ID: 1, Email: "test@example.com", PasswordDigest: "digest"}
	b, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mock.ExpectGet("accounts:email:test@example.com").SetVal(string(b))

	inner := &mockAccountRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
			t.Error("inner repository must not be called on a cache hit")
			return nil, usecase.ErrAccountNotFound
		},
	}

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, inner, "accounts")

	account, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != cached.ID || account.Email != cached.Email {
		t.Errorf("unexpected account: %+v", account)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingAccountRepository_FindByEmail_CacheMiss はキャッシュミス時に
// 内部リポジトリへフォールバックし、結果をキャッシュすることを検証します。
func TestCachingAccountRepository_FindByEmail_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	stored := &entity.Account{ID: 1, Email: "test@example.com", PasswordDigest: "digest"}
	b, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectGet("accounts:email:test@example.com").RedisNil()
	mock.ExpectSet("accounts:email:test@example.com", b, 5*time.Minute).SetVal("OK")

	innerCalled := false
	inner := &mockAccountRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
			innerCalled = true
			return stored, nil
		},
	}

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, inner, "accounts")

	account, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("inner repository was not called on a cache miss")
	}
	if account.Email != stored.Email {
		t.Errorf("unexpected account: %+v", account)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingAccountRepository_FindByEmail_NotFound は未登録メールアドレスの
// 検索結果がキャッシュされないことを検証します（ネガティブキャッシュなし）。
func TestCachingAccountRepository_FindByEmail_NotFound(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("accounts:email:nobody@example.com").RedisNil()
	// No Set expectation: a miss must not be cached

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, &mockAccountRepository{}, "accounts")

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, usecase.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingAccountRepository_FindByEmail_CorruptedEntry は破損した
// キャッシュエントリを削除し、内部リポジトリへフォールバックすることを検証します。
func TestCachingAccountRepository_FindByEmail_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	stored := &entity.Account{ID: 1, Email: "test@example.com", PasswordDigest: "digest"}
	b, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectGet("accounts:email:test@example.com").SetVal("{not json")
	mock.ExpectDel("accounts:email:test@example.com").SetVal(1)
	mock.ExpectSet("accounts:email:test@example.com", b, 5*time.Minute).SetVal("OK")

	inner := &mockAccountRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
			return stored, nil
		},
	}

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, inner, "accounts")

	account, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != stored.Email {
		t.Errorf("unexpected account: %+v", account)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingAccountRepository_Create_WarmsCache は作成成功時に
// メールキーのキャッシュがウォームされることを検証します。
func TestCachingAccountRepository_Create_WarmsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockAccountRepository{
		createFn: func(ctx context.Context, account *entity.Account) error {
			account.ID = 1
			return nil
		},
	}

	account := &entity.Account{Email: "new@example.com", PasswordDigest: "digest"}

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, inner, "accounts")

	// The Set payload includes the ID assigned by the inner Create
	mock.Regexp().ExpectSet("accounts:email:new@example.com", `.*"ID":1.*`, 5*time.Minute).SetVal("OK")

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingAccountRepository_Create_ConflictPassesThrough は内部リポジトリの
// 競合エラーがそのまま伝播し、キャッシュ操作が発生しないことを検証します。
func TestCachingAccountRepository_Create_ConflictPassesThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockAccountRepository{
		createFn: func(ctx context.Context, account *entity.Account) error {
			return usecase.ErrAccountExists
		},
	}

	repo := NewCachingAccountRepository(rdb, 5*time.Minute, inner, "accounts")

	err := repo.Create(context.Background(), &entity.Account{Email: "dup@example.com"})
	if !errors.Is(err, usecase.ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis activity: %v", err)
	}
}
