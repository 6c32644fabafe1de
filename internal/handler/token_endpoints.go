package handler

import (
	"net/http"

	"push-relay/internal/models"

	"github.com/gin-gonic/gin"
)

type updateTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

// getUserToken обрабатывает GET /api/user/:userId/token.
// Отсутствующий токен - успешный ответ с fcmToken: null, не ошибка
// (асимметрия с путем отправки сохранена намеренно).
func (h *RelayHandler) getUserToken(c *gin.Context) {
	userID := c.Param("userId")

	token, err := h.registry.GetToken(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	tokenReadsTotal.Inc()

	c.JSON(http.StatusOK, models.TokenReadResponse{
		UserID:   userID,
		FCMToken: token,
	})
}

// updateUserToken обрабатывает POST /api/user/:userId/token.
// Запись работает как upsert: существование пользователя по умолчанию
// не проверяется (поведение настраивается конфигурацией).
func (h *RelayHandler) updateUserToken(c *gin.Context) {
	userID := c.Param("userId")

	var req updateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{
			Error:     "Invalid request data: " + err.Error(),
			ErrorCode: models.ErrCodeInvalidRequest,
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	if err := h.registry.SaveToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		handleServiceError(c, err)
		return
	}

	tokenUpdatesTotal.Inc()

	c.JSON(http.StatusOK, models.TokenWriteResponse{
		Success: true,
		Message: "Token updated successfully",
	})
}
