package service

import (
	"context"
	"fmt"

	"push-relay/internal/constants"
	"push-relay/internal/models"

	fcm "firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PushSender отправляет собранный payload одному устройству.
// Возвращает идентификатор квитанции провайдера (message id).
type PushSender interface {
	Send(ctx context.Context, payload *models.PushPayload) (string, error)
}

// --- Реальный FCM Sender ---

type fcmSender struct {
	client *fcm.Client
	logger *zap.Logger
}

// NewFCMSender создает отправителя поверх FCM Messaging client.
func NewFCMSender(client *fcm.Client, logger *zap.Logger) PushSender {
	return &fcmSender{
		client: client,
		logger: logger.Named("fcm_sender"),
	}
}

func (s *fcmSender) Send(ctx context.Context, payload *models.PushPayload) (string, error) {
	message := &fcm.Message{
		Token: payload.Token,
		Notification: &fcm.Notification{
			Title: payload.Notification.Title,
			Body:  payload.Notification.Body,
		},
		Data: payload.Data,
		Android: &fcm.AndroidConfig{
			Priority: "high",
			Notification: &fcm.AndroidNotification{
				ChannelID:             constants.PushChannelID,
				Sound:                 "default",
				DefaultVibrateTimings: true,
			},
		},
		APNS: &fcm.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &fcm.APNSPayload{
				Aps: &fcm.Aps{Sound: "default"},
			},
		},
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		// Разделяем в логах невалидный токен и прочие ошибки доставки,
		// наружу в обоих случаях уходит ошибка провайдера
		if fcm.IsUnregistered(err) || fcm.IsInvalidArgument(err) || fcm.IsSenderIDMismatch(err) {
			s.logger.Warn("FCM отклонил токен устройства",
				zap.String("token", payload.Token),
				zap.Error(err),
			)
		} else {
			s.logger.Error("Ошибка отправки FCM", zap.Error(err))
		}
		return "", fmt.Errorf("fcm send failed: %w", err)
	}

	s.logger.Info("FCM уведомление отправлено", zap.String("message_id", messageID))
	return messageID, nil
}

// --- Заглушка для PushSender ---

type stubPushSender struct {
	logger *zap.Logger
}

// NewStubPushSender возвращает заглушку, имитирующую успешную отправку.
// Выбирается конфигурацией PUSH_PROVIDER=stub: уведомления логируются,
// в FCM ничего не уходит.
func NewStubPushSender(logger *zap.Logger) PushSender {
	return &stubPushSender{logger: logger.Named("stub_push_sender")}
}

func (s *stubPushSender) Send(ctx context.Context, payload *models.PushPayload) (string, error) {
	s.logger.Info("ЗАГЛУШКА: Отправка push-уведомления",
		zap.String("token", payload.Token),
		zap.String("title", payload.Notification.Title),
		zap.String("body", payload.Notification.Body),
		zap.Any("data", payload.Data),
	)
	// Имитируем успешную отправку с фиктивной квитанцией
	return "stub-message-" + uuid.NewString(), nil
}
