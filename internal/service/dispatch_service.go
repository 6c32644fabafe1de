package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"push-relay/internal/models"
	"push-relay/internal/notifications"
	"push-relay/internal/repository"

	"go.uber.org/zap"
)

// DispatchService обрабатывает запрос на отправку push-уведомления:
// валидация -> поиск токена получателя -> разрешение имени отправителя ->
// сборка payload -> отправка через провайдера. Без ретраев и дедупликации:
// два одинаковых запроса дают два уведомления.
type DispatchService struct {
	users        repository.UserStore
	tokens       repository.TokenStore
	nameResolver SenderNameResolver
	sender       PushSender
	logger       *zap.Logger
	callTimeout  time.Duration // Таймаут на каждый внешний вызов
}

// NewDispatchService создает сервис отправки уведомлений.
func NewDispatchService(
	users repository.UserStore,
	tokens repository.TokenStore,
	nameResolver SenderNameResolver,
	sender PushSender,
	logger *zap.Logger,
	callTimeout time.Duration,
) *DispatchService {
	return &DispatchService{
		users:        users,
		tokens:       tokens,
		nameResolver: nameResolver,
		sender:       sender,
		logger:       logger.Named("dispatch_service"),
		callTimeout:  callTimeout,
	}
}

// Dispatch выполняет один синхронный цикл отправки.
// Ошибки возвращаются обернутыми в sentinel-ошибки из models,
// маппинг на HTTP-статусы делается один раз на границе handler'а.
func (s *DispatchService) Dispatch(ctx context.Context, req *models.NotificationRequest) (*models.DispatchResult, error) {
	// 1. Валидация обязательных полей - до любых внешних вызовов
	if missing := missingFields(req); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s",
			models.ErrInvalidRequest, strings.Join(missing, ", "))
	}

	log := s.logger.With(
		zap.String("receiverID", req.ReceiverID),
		zap.String("senderID", req.SenderID),
	)

	// 2. Запись получателя и его токен доставки
	if _, err := s.getUser(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Получатель не найден в хранилище записей")
			return nil, models.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}

	token, err := s.getToken(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}
	if token == "" {
		log.Warn("У получателя нет токена доставки")
		return nil, models.ErrTokenUnavailable
	}

	// 3. Имя отправителя для заголовка уведомления
	senderName := s.resolveSenderName(ctx, req)

	// 4. Сборка payload
	payload, err := notifications.BuildChatMessagePayload(req, senderName, token, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInternalServer, err)
	}

	// 5. Отправка
	messageID, err := s.send(ctx, payload)
	if err != nil {
		log.Error("Доставка уведомления не удалась", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrDeliveryFailed, err)
	}

	log.Info("Уведомление отправлено", zap.String("messageID", messageID))
	return &models.DispatchResult{MessageID: messageID}, nil
}

func missingFields(req *models.NotificationRequest) []string {
	var missing []string
	if req.ReceiverID == "" {
		missing = append(missing, "receiverId")
	}
	if req.SenderID == "" {
		missing = append(missing, "senderId")
	}
	if req.Message == "" {
		missing = append(missing, "message")
	}
	return missing
}

// Внешние вызовы выполняются под собственным таймаутом,
// чтобы зависший Firestore/FCM не держал запрос бесконечно.
func (s *DispatchService) withCallTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *DispatchService) getUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	callCtx, cancel := s.withCallTimeout(ctx)
	defer cancel()
	return s.users.GetUser(callCtx, userID)
}

func (s *DispatchService) getToken(ctx context.Context, userID string) (string, error) {
	callCtx, cancel := s.withCallTimeout(ctx)
	defer cancel()
	return s.tokens.GetToken(callCtx, userID)
}

func (s *DispatchService) resolveSenderName(ctx context.Context, req *models.NotificationRequest) string {
	callCtx, cancel := s.withCallTimeout(ctx)
	defer cancel()
	return s.nameResolver.Resolve(callCtx, req)
}

func (s *DispatchService) send(ctx context.Context, payload *models.PushPayload) (string, error) {
	callCtx, cancel := s.withCallTimeout(ctx)
	defer cancel()
	return s.sender.Send(callCtx, payload)
}
