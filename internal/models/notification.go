package models

// NotificationRequest - входящий запрос на отправку push-уведомления.
// ReceiverID, SenderID и Message обязательны; SenderName и ChatRoomID опциональны.
type NotificationRequest struct {
	ReceiverID string `json:"receiverId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
	ChatRoomID string `json:"chatRoomId"`
}

// PushNotification содержит видимую часть уведомления (title/body).
type PushNotification struct {
	Title string
	Body  string
}

// PushPayload - полностью собранный payload для отправки через FCM.
// Data несет неусеченный текст сообщения и метаданные чата.
type PushPayload struct {
	Token        string
	Notification PushNotification
	Data         map[string]string
}

// DispatchResult - результат успешной отправки.
type DispatchResult struct {
	MessageID string
}
