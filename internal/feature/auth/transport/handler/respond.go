package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
)

// writeError はユースケースのエラーを安定したワイヤレベルのエラー形式に変換します。
// 分類ごとに1ケースずつマッチし、未知のエラーは詳細を漏らさず500に集約します。
func writeError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: verr.Message})
	case errors.Is(err, usecase.ErrAccountExists):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "User already exists"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid credentials"})
	case errors.Is(err, usecase.ErrAccountNotFound):
		// 有効なトークンを提示したがアカウントが存在しないケース
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid token"})
	default:
		// 内部エラーの詳細は運用ログのみに出力し、呼び出し元へは返さない
		slog.Error("internal error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Something went wrong"})
	}
}
