// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	jwtmw "auth_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたメールアドレスとパスワードで新規アカウントを登録し、トークンを発行します。
	Register(ctx context.Context, email, password string) (*entity.Account, string, error)
	// Login はアカウントを認証し、成功時にアカウントとトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.Account, string, error)
	// Profile は認証済みアカウントの情報を取得します。
	Profile(ctx context.Context, accountID uint) (*entity.Account, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はアカウント登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は最初の違反フィールドのメッセージ付きで400を返却
// - 登録失敗時はエラー種別に応じて400/500を返却
// - 成功時はアカウントの公開ビューとトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: dto.BindingMessage(err)})
		return
	}
	account, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("account registered", "email", account.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.AccountView{Email: account.Email},
		Token: token,
	})
}

// Login はログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は汎用メッセージ付きで400を返却
// - 認証成功時はアカウントの公開ビューとトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: dto.BindingMessage(err)})
		return
	}
	account, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、未登録か不一致かは公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("account login successful", "email", account.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.AccountView{Email: account.Email},
		Token: token,
	})
}

// Me は認証済みアカウントの情報を返すAPIエンドポイントを処理します。
// AuthRequiredミドルウェアがコンテキストに設定したアカウントIDを使用します。
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := c.GetUint(jwtmw.ContextAccountID)
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid token"})
		return
	}
	account, err := h.auth.Profile(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.AccountView{Email: account.Email}})
}
