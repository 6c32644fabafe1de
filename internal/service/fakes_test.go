package service

import (
	"context"
	"fmt"
	"sync"

	"push-relay/internal/models"
)

// Фейковые реализации хранилищ и отправителя для unit-тестов.
// Счетчики вызовов позволяют проверить, что валидация отсекает
// запрос до любых внешних вызовов.

type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*models.UserRecord
	err      error
	getCalls int
}

func newFakeUserStore(users ...*models.UserRecord) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.UserRecord)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetUser(_ context.Context, userID string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	rec, ok := s.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return rec, nil
}

type fakeTokenStore struct {
	mu        sync.Mutex
	tokens    map[string]string
	getErr    error
	saveErr   error
	getCalls  int
	saveCalls int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) GetToken(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.tokens[userID], nil
}

func (s *fakeTokenStore) SaveToken(_ context.Context, userID string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens[userID] = token
	return nil
}

type fakePushSender struct {
	mu   sync.Mutex
	sent []*models.PushPayload
	err  error
}

func (s *fakePushSender) Send(_ context.Context, payload *models.PushPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, payload)
	// Каждая отправка получает свой идентификатор квитанции
	return fmt.Sprintf("projects/test/messages/%d", len(s.sent)), nil
}

func (s *fakePushSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *fakePushSender) lastSent() *models.PushPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[len(s.sent)-1]
}
