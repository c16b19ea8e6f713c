// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// accountPostgres はAccountRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type accountPostgres struct {
	db *gorm.DB
}

// accountPostgresがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountPostgres は指定されたgorm.DB接続でaccountPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountPostgres(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// Create はアカウントをデータベースに追加します。
// 同じメールアドレスのアカウントが既に存在する場合、usecase.ErrAccountExistsを返します。
func (r *accountPostgres) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// PostgreSQLエラー23505: ユニーク制約違反
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return usecase.ErrAccountExists
		}
		// GORMのエラー変換を有効にしたドライバ（テスト用SQLite等）向け
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAccountExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでアカウントを取得します。
// アカウントが存在しない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountPostgres) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
