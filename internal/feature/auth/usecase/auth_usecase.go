// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"auth_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// dummyDigest はアカウント未検出時のタイミング攻撃緩和用ダミーダイジェストです。
// bcrypt検証が常に実行されることを保証します。
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じメールアドレスのアカウントが既に存在する場合、ErrAccountExistsを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail は指定されたメールアドレスに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID は指定されたIDに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/hash）ではなくコンシューマー（usecase）が定義します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きダイジェストを生成します。
	Hash(password string) (string, error)
	// Verify は平文パスワードがダイジェストと一致するかを返します。
	// 不正な形式のダイジェストを含め、不一致は常にfalseを返します。
	Verify(password, digest string) bool
}

// TokenIssuer は署名付きベアラートークンの発行を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたアカウントの署名済みトークンを生成します。
	GenerateToken(accountID uint) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(accounts AccountRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規アカウントを登録し、トークンを発行します。
// バリデーション失敗時はストレージもハッシュ化も実行されません（部分的な副作用なし）。
func (u *authUsecase) Register(ctx context.Context, email, password string) (*entity.Account, string, error) {
	// パスワード強度を検証（ストア・ハッシュ操作より前）
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	// 事前チェック：既存アカウントの有無を確認
	if _, err := u.accounts.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	digest, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{Email: email, PasswordDigest: digest}
	if err := u.accounts.Create(ctx, account); err != nil {
		// 一意性の権威はストア側にある。同時登録の競合で事前チェックを
		// すり抜けた重複も、事前チェックのヒットと同等に扱う。
		if errors.Is(err, ErrAccountExists) {
			return nil, "", ErrAccountExists
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := u.tokens.GenerateToken(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return account, token, nil
}

// Login はアカウントを認証し、成功時にアカウントと署名済みトークンを返します。
// メールアドレス未登録とパスワード不一致は同一のErrInvalidCredentialsを返し、
// どのメールアドレスが登録済みかを外部から判別できないようにします。
// タイミング攻撃を緩和するため、アカウントが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.Account, string, error) {
	account, err := u.accounts.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	// アカウント未検出でも常にパスワードを検証する
	digest := dummyDigest
	if err == nil {
		digest = account.PasswordDigest
	}
	ok := u.hasher.Verify(password, digest)

	// 未検出・不一致のどちらも同一の汎用エラーを返す
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(account.ID)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return account, token, nil
}

// Profile は認証済みアカウントの情報を取得します。
func (u *authUsecase) Profile(ctx context.Context, accountID uint) (*entity.Account, error) {
	return u.accounts.FindByID(ctx, accountID)
}
