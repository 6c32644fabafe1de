package notifications

import (
	"fmt"
	"time"

	"push-relay/internal/constants"
	"push-relay/internal/models"
)

// BuildChatMessagePayload создает payload для push-уведомления о новом сообщении чата.
// Заголовок - уже разрешенное имя отправителя, видимый текст усекается,
// а data payload несет полный текст и метаданные чата.
func BuildChatMessagePayload(
	req *models.NotificationRequest,
	senderName string,
	token string,
	sentAt time.Time,
) (*models.PushPayload, error) {
	if req == nil {
		return nil, fmt.Errorf("cannot build chat message payload for nil request")
	}
	if token == "" {
		return nil, fmt.Errorf("cannot build chat message payload without a delivery token")
	}

	title := senderName
	if title == "" {
		title = constants.DefaultNotificationTitle
	}

	data := map[string]string{
		constants.PushDataKeyRoomID:     req.ChatRoomID, // пустая строка, если комната не указана
		constants.PushDataKeySenderID:   req.SenderID,
		constants.PushDataKeySenderName: title,
		constants.PushDataKeyMessage:    req.Message, // всегда неусеченный текст
		constants.PushDataKeySentAt:     sentAt.UTC().Format(time.RFC3339),
	}

	payload := &models.PushPayload{
		Token: token,
		Notification: models.PushNotification{
			Title: title,
			Body:  TruncateBody(req.Message),
		},
		Data: data,
	}

	return payload, nil
}

// TruncateBody усекает видимый текст уведомления до PushBodyMaxLength рун,
// добавляя многоточие. Текст в пределах лимита возвращается как есть.
func TruncateBody(message string) string {
	runes := []rune(message)
	if len(runes) <= constants.PushBodyMaxLength {
		return message
	}
	return string(runes[:constants.PushBodyMaxLength]) + constants.PushBodyEllipsis
}
