package service

import (
	"context"
	"strings"
	"testing"

	"push-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStubPushSenderReceipts(t *testing.T) {
	sender := NewStubPushSender(zap.NewNop())

	payload := &models.PushPayload{
		Token: "device-token",
		Notification: models.PushNotification{
			Title: "Alice",
			Body:  "hi",
		},
	}

	// Заглушка отвечает успехом и выдает уникальную квитанцию на каждый вызов
	first, err := sender.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "stub-message-"))

	second, err := sender.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
