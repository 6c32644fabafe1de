package constants

// Идентификатор канала уведомлений на Android (должен совпадать с каналом в клиенте)
const PushChannelID = "chat_messages"

// Максимальная длина видимого текста уведомления (в рунах).
// Полный текст сообщения всегда уходит в data payload.
const (
	PushBodyMaxLength = 50
	PushBodyEllipsis  = "..."
)

// Ключи data payload для push-уведомлений о сообщениях чата
const (
	PushDataKeyRoomID     = "chatRoomId"
	PushDataKeySenderID   = "senderId"
	PushDataKeySenderName = "senderName"
	PushDataKeyMessage    = "message"
	PushDataKeySentAt     = "sentAt"
)

// Значения для резолвинга имени отправителя
const (
	// Клиенты старых версий присылают это значение вместо настоящего имени
	SenderNamePlaceholder = "Unknown"
	// Fallback, если авторитетный lookup имени не дал результата
	SenderNameFallback = "Unknown User"
	// Заголовок по умолчанию, когда имя отправителя не передано
	DefaultNotificationTitle = "New Message"
)

// Поля документа пользователя в Firestore, обновляемые merge-записью.
// Остальные поля (displayName) читаются целиком через firestore-теги модели.
const (
	UserFieldFCMToken       = "fcmToken"
	UserFieldTokenUpdatedAt = "tokenUpdatedAt"
)
