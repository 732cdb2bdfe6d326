package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound ストアにリフレッシュトークンが存在しない
var ErrTokenNotFound = errors.New("リフレッシュトークンが見つかりません")

// TokenRepository リフレッシュトークンの保存・取得を行うインターフェース
// メールアドレスをキーとし、TTL付きで保存する
type TokenRepository interface {
	Save(ctx context.Context, email, refreshToken string, ttl time.Duration) error
	Find(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

const refreshTokenKeyPrefix = "refresh_token:"

// redisTokenRepository Redisを使ったTokenRepositoryの実装
type redisTokenRepository struct {
	client *redis.Client
}

// NewTokenRepository TokenRepositoryを作成
func NewTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

// Save リフレッシュトークンをTTL付きで保存（既存の値は上書き）
func (r *redisTokenRepository) Save(ctx context.Context, email, refreshToken string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshTokenKeyPrefix+email, refreshToken, ttl).Err()
}

// Find メールアドレスでリフレッシュトークンを取得
func (r *redisTokenRepository) Find(ctx context.Context, email string) (string, error) {
	value, err := r.client.Get(ctx, refreshTokenKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return value, nil
}

// Delete リフレッシュトークンを削除（ログアウト・退会時）
func (r *redisTokenRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, refreshTokenKeyPrefix+email).Err()
}
