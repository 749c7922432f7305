package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

const RevokedTokenPrefix = "community:token:revoked"

// TokenRepository 令牌吊销名单，key 过期时间等于令牌剩余有效期
type TokenRepository struct {
	Client *redis.Client
}

func NewTokenRepository(c *redis.Client) *TokenRepository {
	return &TokenRepository{Client: c}
}

// RevokedKey 令牌做摘要后再入 key，避免明文落库
func RevokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s", RevokedTokenPrefix, hex.EncodeToString(sum[:]))
}

func (r *TokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.Client.Set(ctx, RevokedKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.Client.Exists(ctx, RevokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}
