package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
// Поле Error сохранено для совместимости со старыми клиентами,
// ErrorCode - стабильный машиночитаемый код.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode"`
	Details   string `json:"details,omitempty"`
}

// SendNotificationResponse - успешный ответ диспетчера уведомлений.
// MessageID - идентификатор квитанции, который вернул FCM.
type SendNotificationResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

// TokenReadResponse - ответ на чтение токена пользователя.
// FCMToken == nil - валидное состояние (токен не установлен), не ошибка.
type TokenReadResponse struct {
	UserID   string  `json:"userId"`
	FCMToken *string `json:"fcmToken"`
}

// TokenWriteResponse - ответ на запись токена.
type TokenWriteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResponse - ответ корневого эндпоинта.
type StatusResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
