package repository

import (
	"context"

	"push-relay/internal/models"
)

// UserStore - доступ к записям пользователей во внешнем хранилище.
// Записи создаются и удаляются вне этого сервиса.
type UserStore interface {
	// GetUser возвращает запись пользователя или models.ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*models.UserRecord, error)
}

// TokenStore - чтение/запись токена доставки пользователя.
// Реализации: Firestore (поле документа) и Redis (key-value) -
// выбирается конфигурацией, чтобы поддержать миграцию хранилища токенов.
type TokenStore interface {
	// GetToken возвращает токен или пустую строку, если токен не установлен.
	// Существование пользователя НЕ проверяется - это забота вызывающего.
	GetToken(ctx context.Context, userID string) (string, error)
	// SaveToken сохраняет токен и серверный таймстемп обновления (upsert).
	SaveToken(ctx context.Context, userID string, token string) error
}
