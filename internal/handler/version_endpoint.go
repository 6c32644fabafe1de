package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getAppVersion обрабатывает GET /api/app/version.
// Ответ собран один раз при старте и не меняется между запросами.
func (h *RelayHandler) getAppVersion(c *gin.Context) {
	c.JSON(http.StatusOK, h.version)
}
