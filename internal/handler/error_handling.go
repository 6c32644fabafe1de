package handler

import (
	"errors"
	"net/http"
	"strings"

	"push-relay/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError конвертирует ошибку сервисного слоя в JSON-ответ.
// Маппинг на HTTP-статусы делается только здесь, handler'ы не дублируют его.
func handleServiceError(c *gin.Context, err error) {
	statusCode, errResp := mapServiceError(err)
	if statusCode >= http.StatusInternalServerError {
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
	}
	c.AbortWithStatusJSON(statusCode, errResp)
}

func mapServiceError(err error) (int, models.ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest, models.ErrorResponse{
			Error:     err.Error(),
			ErrorCode: models.ErrCodeInvalidRequest,
		}
	case errors.Is(err, models.ErrRecipientNotFound):
		return http.StatusNotFound, models.ErrorResponse{
			Error:     "Recipient not found",
			ErrorCode: models.ErrCodeRecipientNotFound,
		}
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, models.ErrorResponse{
			Error:     "User not found",
			ErrorCode: models.ErrCodeUserNotFound,
		}
	case errors.Is(err, models.ErrTokenUnavailable):
		// 404: получатель известен, но адреса доставки у него нет
		return http.StatusNotFound, models.ErrorResponse{
			Error:     "Recipient has no FCM token",
			ErrorCode: models.ErrCodeTokenUnavailable,
		}
	case errors.Is(err, models.ErrDeliveryFailed):
		return http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Failed to send notification",
			ErrorCode: models.ErrCodeDeliveryFailed,
			Details:   errDetails(err, models.ErrDeliveryFailed),
		}
	case errors.Is(err, models.ErrInternalServer):
		return http.StatusInternalServerError, models.ErrorResponse{
			Error:     "An unexpected internal error occurred",
			ErrorCode: models.ErrCodeInternal,
			Details:   errDetails(err, models.ErrInternalServer),
		}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{
			Error:     "An unexpected internal error occurred",
			ErrorCode: models.ErrCodeInternal,
		}
	}
}

// errDetails отрезает текст sentinel-ошибки, оставляя сообщение нижележащего сбоя.
func errDetails(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	if msg == sentinel.Error() {
		return ""
	}
	return msg
}
