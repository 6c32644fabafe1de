package models

// UserRecord - запись пользователя во внешнем хранилище (Firestore).
// Документ создается и удаляется вне этого сервиса; отсутствие записи
// и отсутствие токена - разные валидные состояния.
type UserRecord struct {
	ID          string `firestore:"-"`
	DisplayName string `firestore:"displayName"`
	FCMToken    string `firestore:"fcmToken"`
}
