package service

import (
	"context"

	"push-relay/internal/config"
	"push-relay/internal/constants"
	"push-relay/internal/models"
	"push-relay/internal/repository"

	"go.uber.org/zap"
)

// SenderNameResolver определяет, какое имя отправителя попадет в заголовок
// уведомления. Две реализации: доверять вызывающему (поведение старых ревизий)
// и авторитетный lookup по хранилищу записей.
type SenderNameResolver interface {
	Resolve(ctx context.Context, req *models.NotificationRequest) string
}

// NewSenderNameResolver выбирает реализацию по значению конфигурации.
func NewSenderNameResolver(mode string, users repository.UserStore, logger *zap.Logger) SenderNameResolver {
	if mode == config.SenderNameModeTrustCaller {
		return &trustCallerResolver{}
	}
	return &lookupResolver{
		users:  users,
		logger: logger.Named("sender_name_resolver"),
	}
}

// --- Доверяем вызывающему ---

type trustCallerResolver struct{}

func (r *trustCallerResolver) Resolve(_ context.Context, req *models.NotificationRequest) string {
	if req.SenderName != "" {
		return req.SenderName
	}
	return constants.DefaultNotificationTitle
}

// --- Авторитетный lookup ---

type lookupResolver struct {
	users  repository.UserStore
	logger *zap.Logger
}

func (r *lookupResolver) Resolve(ctx context.Context, req *models.NotificationRequest) string {
	// Переданное имя используется, только если это не placeholder
	if req.SenderName != "" && req.SenderName != constants.SenderNamePlaceholder {
		return req.SenderName
	}

	rec, err := r.users.GetUser(ctx, req.SenderID)
	if err != nil {
		// Неудачный lookup имени не должен ронять отправку уведомления
		r.logger.Warn("Не удалось получить имя отправителя, используется fallback",
			zap.String("senderID", req.SenderID),
			zap.Error(err),
		)
		return constants.SenderNameFallback
	}
	if rec.DisplayName == "" {
		return constants.SenderNameFallback
	}
	return rec.DisplayName
}
