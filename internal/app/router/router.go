package router

import (
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	jwtmw "auth_backend/internal/platform/jwt"
	platformhandler "auth_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, verifier jwtmw.Verifier) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	auth := r.Group("/auth")
	{
		// 新規アカウント登録
		auth.POST("/register", authHandler.Register)
		// ログイン（トークン発行）
		auth.POST("/login", authHandler.Login)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに Bearer トークンが必要になる
	protected := r.Group("/auth")
	protected.Use(jwtmw.AuthRequired(verifier))
	{
		protected.GET("/me", authHandler.Me)
	}

	return r
}
