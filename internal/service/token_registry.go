package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"push-relay/internal/models"
	"push-relay/internal/repository"

	"go.uber.org/zap"
)

// TokenRegistry - чтение/запись токена доставки одного пользователя.
// Чтение требует существующей записи пользователя; отсутствующий токен
// при этом - успешный результат (nil), а не ошибка. Запись по умолчанию
// работает как upsert без проверки существования.
type TokenRegistry struct {
	users       repository.UserStore
	tokens      repository.TokenStore
	logger      *zap.Logger
	requireUser bool // Проверять ли запись пользователя перед записью токена
	callTimeout time.Duration
}

// NewTokenRegistry создает реестр токенов.
func NewTokenRegistry(
	users repository.UserStore,
	tokens repository.TokenStore,
	logger *zap.Logger,
	requireUser bool,
	callTimeout time.Duration,
) *TokenRegistry {
	return &TokenRegistry{
		users:       users,
		tokens:      tokens,
		logger:      logger.Named("token_registry"),
		requireUser: requireUser,
		callTimeout: callTimeout,
	}
}

// GetToken возвращает токен пользователя или nil, если токен не установлен.
// Возвращает models.ErrUserNotFound, если записи пользователя нет.
func (r *TokenRegistry) GetToken(ctx context.Context, userID string) (*string, error) {
	if _, err := r.getUser(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}

	token, err := r.getToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}
	if token == "" {
		// Токен не установлен - валидное состояние
		return nil, nil
	}
	return &token, nil
}

// SaveToken сохраняет токен пользователя вместе с серверным таймстемпом.
func (r *TokenRegistry) SaveToken(ctx context.Context, userID string, token string) error {
	if token == "" {
		return fmt.Errorf("%w: fcmToken is required", models.ErrInvalidRequest)
	}

	if r.requireUser {
		if _, err := r.getUser(ctx, userID); err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return err
			}
			return fmt.Errorf("%w: %v", models.ErrInternalServer, err)
		}
	}

	if err := r.saveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}

	r.logger.Info("Токен доставки обновлен", zap.String("userID", userID))
	return nil
}

// Каждый внешний вызов получает собственный бюджет таймаута,
// медленный Firestore не съедает бюджет обращения к хранилищу токенов.
func (r *TokenRegistry) withCallTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.callTimeout)
}

func (r *TokenRegistry) getUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	callCtx, cancel := r.withCallTimeout(ctx)
	defer cancel()
	return r.users.GetUser(callCtx, userID)
}

func (r *TokenRegistry) getToken(ctx context.Context, userID string) (string, error) {
	callCtx, cancel := r.withCallTimeout(ctx)
	defer cancel()
	return r.tokens.GetToken(callCtx, userID)
}

func (r *TokenRegistry) saveToken(ctx context.Context, userID string, token string) error {
	callCtx, cancel := r.withCallTimeout(ctx)
	defer cancel()
	return r.tokens.SaveToken(callCtx, userID, token)
}
