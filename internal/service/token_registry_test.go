package service

import (
	"context"
	"testing"
	"time"

	"push-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry(users *fakeUserStore, tokens *fakeTokenStore, requireUser bool) *TokenRegistry {
	return NewTokenRegistry(users, tokens, zap.NewNop(), requireUser, 10*time.Second)
}

func TestGetTokenUserNotFound(t *testing.T) {
	reg := newTestRegistry(newFakeUserStore(), newFakeTokenStore(), false)

	_, err := reg.GetToken(context.Background(), "ghost")
	require.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetTokenUnsetIsSuccess(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u1"})
	reg := newTestRegistry(users, newFakeTokenStore(), false)

	// Пользователь есть, токена нет: успешный ответ с nil, не ошибка
	token, err := reg.GetToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestSaveTokenEmptyRejected(t *testing.T) {
	tokens := newFakeTokenStore()
	reg := newTestRegistry(newFakeUserStore(), tokens, false)

	err := reg.SaveToken(context.Background(), "u1", "")
	require.ErrorIs(t, err, models.ErrInvalidRequest)
	assert.Equal(t, 0, tokens.saveCalls, "store must not be touched")
}

func TestSaveTokenUpsertWithoutExistenceCheck(t *testing.T) {
	users := newFakeUserStore() // пользователя нет
	tokens := newFakeTokenStore()
	reg := newTestRegistry(users, tokens, false)

	// По умолчанию запись - upsert, существование не проверяется
	err := reg.SaveToken(context.Background(), "brand-new", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 0, users.getCalls)
	assert.Equal(t, "tok-1", tokens.tokens["brand-new"])
}

func TestSaveTokenRequireUser(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u1"})
	tokens := newFakeTokenStore()
	reg := newTestRegistry(users, tokens, true)

	require.NoError(t, reg.SaveToken(context.Background(), "u1", "tok-1"))

	err := reg.SaveToken(context.Background(), "ghost", "tok-2")
	require.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Empty(t, tokens.tokens["ghost"])
}

// Хранилище пользователей, которое отвечает дольше таймаута одного вызова.
type slowUserStore struct {
	*fakeUserStore
	delay time.Duration
}

func (s *slowUserStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	time.Sleep(s.delay)
	return s.fakeUserStore.GetUser(ctx, userID)
}

// Хранилище токенов, которое отказывает при уже истекшем контексте.
type deadlineTokenStore struct {
	*fakeTokenStore
}

func (s *deadlineTokenStore) GetToken(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.fakeTokenStore.GetToken(ctx, userID)
}

func TestGetTokenFreshTimeoutPerCall(t *testing.T) {
	users := &slowUserStore{
		fakeUserStore: newFakeUserStore(&models.UserRecord{ID: "u1"}),
		delay:         60 * time.Millisecond,
	}
	tokens := &deadlineTokenStore{fakeTokenStore: newFakeTokenStore()}
	tokens.tokens["u1"] = "tok-1"

	// Таймаут меньше задержки первого вызова: если бы оба вызова
	// делили один контекст, чтение токена получило бы истекший дедлайн
	reg := NewTokenRegistry(users, tokens, zap.NewNop(), false, 30*time.Millisecond)

	token, err := reg.GetToken(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", *token)
}

func TestTokenRoundTrip(t *testing.T) {
	users := newFakeUserStore(&models.UserRecord{ID: "u1"})
	tokens := newFakeTokenStore()
	reg := newTestRegistry(users, tokens, false)

	require.NoError(t, reg.SaveToken(context.Background(), "u1", "tok-42"))

	token, err := reg.GetToken(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "tok-42", *token)
}
