package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/di"
	"auth_backend/internal/app/router"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
	infradb "auth_backend/internal/platform/db"
	"auth_backend/internal/platform/hash"
	jwtmw "auth_backend/internal/platform/jwt"
	infraredis "auth_backend/internal/platform/redis"
)

func main() {
	// 署名シークレットが未設定のまま起動しない。
	// 既定値でのトークン発行は全トークンを偽造可能にするため、起動時に失敗させる。
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set. Refusing to issue tokens with an empty signing key.")
	}

	ttl := jwtmw.DefaultExpiration
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid TOKEN_TTL %q: %v", v, err)
		}
		ttl = parsed
	}

	// db
	db := infradb.OpenDB()

	// Redis（任意。未接続ならキャッシュなしで動作）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository（Redisがあればルックアップキャッシュでラップ）
	accountRepo := di.NewAccountRepository(rdb, db, cache.DefaultTTL)

	// Platform
	hasher := hash.NewBcryptHasher(hash.DefaultCost)
	tokens := jwtmw.NewGenerator(secret, ttl)

	// Usecase
	authUC := authusecase.NewAuthUsecase(accountRepo, hasher, tokens)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)

	// ルータ生成
	r := router.NewRouter(authH, tokens)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
