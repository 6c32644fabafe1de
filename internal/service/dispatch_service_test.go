package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"push-relay/internal/constants"
	"push-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDispatchService(users *fakeUserStore, tokens *fakeTokenStore, sender *fakePushSender) *DispatchService {
	resolver := &trustCallerResolver{}
	return NewDispatchService(users, tokens, resolver, sender, zap.NewNop(), 10*time.Second)
}

func validRequest() *models.NotificationRequest {
	return &models.NotificationRequest{
		ReceiverID: "u2",
		SenderID:   "u1",
		SenderName: "Ali",
		Message:    "hello world this is a moderately long message text",
		ChatRoomID: "room-1",
	}
}

func TestDispatchMissingFields(t *testing.T) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	cases := []struct {
		name    string
		req     *models.NotificationRequest
		missing string
	}{
		{"no receiver", &models.NotificationRequest{SenderID: "u1", Message: "hi"}, "receiverId"},
		{"no sender", &models.NotificationRequest{ReceiverID: "u2", Message: "hi"}, "senderId"},
		{"no message", &models.NotificationRequest{ReceiverID: "u2", SenderID: "u1"}, "message"},
		{"all missing", &models.NotificationRequest{}, "receiverId, senderId, message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Dispatch(context.Background(), tc.req)
			require.ErrorIs(t, err, models.ErrInvalidRequest)
			assert.Contains(t, err.Error(), tc.missing)
		})
	}

	// Невалидный запрос не должен порождать внешних вызовов
	assert.Equal(t, 0, users.getCalls)
	assert.Equal(t, 0, tokens.getCalls)
	assert.Equal(t, 0, sender.sentCount())
}

func TestDispatchRecipientNotFound(t *testing.T) {
	users := newFakeUserStore() // пустое хранилище
	tokens := newFakeTokenStore()
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	_, err := svc.Dispatch(context.Background(), validRequest())
	require.ErrorIs(t, err, models.ErrRecipientNotFound)
	assert.Equal(t, 0, sender.sentCount(), "delivery service must not be called")
}

func TestDispatchTokenUnavailable(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u2", DisplayName: "Bob"})
	tokens := newFakeTokenStore() // токена нет
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	_, err := svc.Dispatch(context.Background(), validRequest())
	require.ErrorIs(t, err, models.ErrTokenUnavailable)
	assert.Equal(t, 0, sender.sentCount(), "delivery service must not be called")
}

func TestDispatchSuccess(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u2", DisplayName: "Bob"})
	tokens := newFakeTokenStore()
	tokens.tokens["u2"] = "tok123"
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	req := validRequest()
	result, err := svc.Dispatch(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, result.MessageID)

	payload := sender.lastSent()
	require.NotNil(t, payload)
	assert.Equal(t, "tok123", payload.Token)
	assert.Equal(t, "Ali", payload.Notification.Title)

	// Сообщение длиннее 50 рун: видимый текст усечен, data - нет
	assert.Equal(t, string([]rune(req.Message)[:50])+"...", payload.Notification.Body)
	assert.Equal(t, req.Message, payload.Data[constants.PushDataKeyMessage])

	// sentAt - валидный RFC3339
	_, err = time.Parse(time.RFC3339, payload.Data[constants.PushDataKeySentAt])
	assert.NoError(t, err)
}

func TestDispatchShortMessageNotTruncated(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u2"})
	tokens := newFakeTokenStore()
	tokens.tokens["u2"] = "tok123"
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	req := validRequest()
	req.Message = "hello"

	_, err := svc.Dispatch(context.Background(), req)
	require.NoError(t, err)

	payload := sender.lastSent()
	assert.Equal(t, "hello", payload.Notification.Body)
	assert.Equal(t, "hello", payload.Data[constants.PushDataKeyMessage])
}

func TestDispatchDeliveryFailed(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u2"})
	tokens := newFakeTokenStore()
	tokens.tokens["u2"] = "tok123"
	sender := &fakePushSender{err: errors.New("fcm: invalid registration token")}
	svc := newTestDispatchService(users, tokens, sender)

	_, err := svc.Dispatch(context.Background(), validRequest())
	require.ErrorIs(t, err, models.ErrDeliveryFailed)
	// Текст ошибки провайдера сохраняется для диагностики
	assert.True(t, strings.Contains(err.Error(), "invalid registration token"))
}

func TestDispatchNoDeduplication(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u2"})
	tokens := newFakeTokenStore()
	tokens.tokens["u2"] = "tok123"
	sender := &fakePushSender{}
	svc := newTestDispatchService(users, tokens, sender)

	// Два конкурентных одинаковых запроса: оба успешны, квитанции разные
	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Dispatch(context.Background(), validRequest())
			errs[i] = err
			if res != nil {
				results[i] = res.MessageID
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, sender.sentCount())
	assert.NotEqual(t, results[0], results[1], "each send gets its own receipt id")
}

func TestSenderNameResolvers(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u1", DisplayName: "Authoritative Ali"})

	trust := &trustCallerResolver{}
	lookup := &lookupResolver{users: users, logger: zap.NewNop()}

	ctx := context.Background()

	// trust-caller: имя из запроса как есть, дефолт при отсутствии
	assert.Equal(t, "Ali", trust.Resolve(ctx, &models.NotificationRequest{SenderID: "u1", SenderName: "Ali"}))
	assert.Equal(t, constants.DefaultNotificationTitle, trust.Resolve(ctx, &models.NotificationRequest{SenderID: "u1"}))

	// lookup: переданное имя принимается, если это не placeholder
	assert.Equal(t, "Ali", lookup.Resolve(ctx, &models.NotificationRequest{SenderID: "u1", SenderName: "Ali"}))
	// placeholder и пустое имя ведут к авторитетному lookup'у
	assert.Equal(t, "Authoritative Ali", lookup.Resolve(ctx, &models.NotificationRequest{SenderID: "u1", SenderName: constants.SenderNamePlaceholder}))
	assert.Equal(t, "Authoritative Ali", lookup.Resolve(ctx, &models.NotificationRequest{SenderID: "u1"}))
	// неизвестный отправитель - fallback
	assert.Equal(t, constants.SenderNameFallback, lookup.Resolve(ctx, &models.NotificationRequest{SenderID: "ghost"}))

	// пустое displayName в записи - тоже fallback
	users.users["u3"] = &models.UserRecord{ID: "u3"}
	assert.Equal(t, constants.SenderNameFallback, lookup.Resolve(ctx, &models.NotificationRequest{SenderID: "u3"}))
}
