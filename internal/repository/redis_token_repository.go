package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure RedisTokenRepository implements TokenStore
var _ TokenStore = (*RedisTokenRepository)(nil)

// RedisTokenRepository хранит токены доставки в Redis.
// Альтернативный бэкенд на период миграции хранилища токенов:
// записи пользователей остаются в Firestore, токены переезжают сюда.
type RedisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed token store.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) *RedisTokenRepository {
	return &RedisTokenRepository{
		client: client,
		logger: logger.Named("redis_token_repo"),
	}
}

func tokenKey(userID string) string {
	return fmt.Sprintf("fcm_token:%s", userID)
}

func tokenUpdatedAtKey(userID string) string {
	return fmt.Sprintf("fcm_token_updated_at:%s", userID)
}

func (r *RedisTokenRepository) GetToken(ctx context.Context, userID string) (string, error) {
	val, err := r.client.Get(ctx, tokenKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			// Токен не установлен - не ошибка
			return "", nil
		}
		r.logger.Error("Ошибка чтения токена из Redis",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get fcm token for user %s from redis: %w", userID, err)
	}
	return val, nil
}

func (r *RedisTokenRepository) SaveToken(ctx context.Context, userID string, token string) error {
	// Пишем токен и таймстемп одним pipeline
	pipe := r.client.Pipeline()
	pipe.Set(ctx, tokenKey(userID), token, 0)
	pipe.Set(ctx, tokenUpdatedAtKey(userID), time.Now().UTC().Format(time.RFC3339), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Ошибка записи токена в Redis",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save fcm token for user %s in redis: %w", userID, err)
	}

	r.logger.Debug("Токен сохранен в Redis", zap.String("userID", userID))
	return nil
}
