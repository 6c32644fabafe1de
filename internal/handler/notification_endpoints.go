package handler

import (
	"net/http"

	"push-relay/internal/models"

	"github.com/gin-gonic/gin"
)

// sendNotification обрабатывает POST /api/send-notification.
// Валидация обязательных полей выполняется в сервисе до любых внешних вызовов.
func (h *RelayHandler) sendNotification(c *gin.Context) {
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notificationsFailedTotal.WithLabelValues(models.ErrCodeInvalidRequest).Inc()
		errResp := models.ErrorResponse{
			Error:     "Invalid request data: " + err.Error(),
			ErrorCode: models.ErrCodeInvalidRequest,
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), &req)
	if err != nil {
		_, errResp := mapServiceError(err)
		notificationsFailedTotal.WithLabelValues(errResp.ErrorCode).Inc()
		handleServiceError(c, err)
		return
	}

	notificationsSentTotal.Inc()

	c.JSON(http.StatusOK, models.SendNotificationResponse{
		Success:   true,
		MessageID: result.MessageID,
		Message:   "Notification sent successfully",
	})
}
