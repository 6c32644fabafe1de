package repository

import (
	"context"
	"errors"
	"fmt"

	"push-relay/internal/constants"
	"push-relay/internal/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Коллекция с записями пользователей
const usersCollection = "users"

// Compile-time проверки реализации интерфейсов
var (
	_ UserStore  = (*FirestoreUserRepository)(nil)
	_ TokenStore = (*FirestoreUserRepository)(nil)
)

// FirestoreUserRepository реализует UserStore и TokenStore поверх Firestore.
// Токен хранится полем fcmToken прямо в документе пользователя.
// Конструктор возвращает конкретный тип: репозиторий обслуживает оба
// интерфейса, нужный выбирается на месте внедрения.
type FirestoreUserRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreUserRepository создает репозиторий пользователей поверх Firestore.
func NewFirestoreUserRepository(client *firestore.Client, logger *zap.Logger) *FirestoreUserRepository {
	return &FirestoreUserRepository{
		client: client,
		logger: logger.Named("firestore_user_repo"),
	}
}

func (r *FirestoreUserRepository) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			r.logger.Debug("Запись пользователя не найдена", zap.String("userID", userID))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Ошибка чтения записи пользователя из Firestore",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get user %s from firestore: %w", userID, err)
	}

	var rec models.UserRecord
	if err := snap.DataTo(&rec); err != nil {
		r.logger.Error("Ошибка декодирования записи пользователя",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to decode user %s: %w", userID, err)
	}
	rec.ID = snap.Ref.ID

	return &rec, nil
}

func (r *FirestoreUserRepository) GetToken(ctx context.Context, userID string) (string, error) {
	rec, err := r.GetUser(ctx, userID)
	if err != nil {
		// Для чтения токена отсутствие записи эквивалентно отсутствию токена
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.FCMToken, nil
}

func (r *FirestoreUserRepository) SaveToken(ctx context.Context, userID string, token string) error {
	// Merge-запись: обновляет только поле токена и серверный таймстемп,
	// создавая документ, если его не было (upsert).
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]interface{}{
		constants.UserFieldFCMToken:       token,
		constants.UserFieldTokenUpdatedAt: firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		r.logger.Error("Ошибка записи токена в Firestore",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save fcm token for user %s: %w", userID, err)
	}

	r.logger.Debug("Токен сохранен в Firestore", zap.String("userID", userID))
	return nil
}
