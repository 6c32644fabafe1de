package handler

import (
	"net/http"
	"time"

	"push-relay/internal/config"
	"push-relay/internal/models"
	"push-relay/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RelayHandler обрабатывает HTTP-запросы сервиса push-уведомлений.
type RelayHandler struct {
	dispatcher *service.DispatchService
	registry   *service.TokenRegistry
	version    models.VersionResponse
	logger     *zap.Logger
}

// NewRelayHandler создает новый RelayHandler.
// Дескриптор версии собирается один раз из конфигурации - эндпоинт
// проверки обновлений полностью детерминирован.
func NewRelayHandler(
	dispatcher *service.DispatchService,
	registry *service.TokenRegistry,
	versionCfg config.VersionConfig,
	logger *zap.Logger,
) *RelayHandler {
	releaseNotes := versionCfg.ReleaseNotes
	if releaseNotes == nil {
		releaseNotes = []string{}
	}

	return &RelayHandler{
		dispatcher: dispatcher,
		registry:   registry,
		version: models.VersionResponse{
			Success:        true,
			CurrentVersion: versionCfg.Current,
			LatestVersion: models.LatestVersion{
				Version:       versionCfg.Latest,
				VersionCode:   versionCfg.LatestCode,
				DownloadURL:   versionCfg.DownloadURL,
				ReleaseNotes:  releaseNotes,
				IsForceUpdate: versionCfg.IsForceUpdate,
				MinVersion:    versionCfg.MinVersion,
			},
		},
		logger: logger.Named("relay_handler"),
	}
}

// RegisterRoutes регистрирует маршруты сервиса.
// dispatchRateLimit применяется только к отправке уведомлений; nil - без лимита.
func (h *RelayHandler) RegisterRoutes(router *gin.Engine, dispatchRateLimit gin.HandlerFunc) {
	router.GET("/", h.status)

	apiGroup := router.Group("/api")
	{
		if dispatchRateLimit != nil {
			apiGroup.POST("/send-notification", dispatchRateLimit, h.sendNotification)
		} else {
			apiGroup.POST("/send-notification", h.sendNotification)
		}
		apiGroup.GET("/user/:userId/token", h.getUserToken)
		apiGroup.POST("/user/:userId/token", h.updateUserToken)
		apiGroup.GET("/app/version", h.getAppVersion)
	}
}

func (h *RelayHandler) status(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Message:   "Chat Push Relay API",
		Status:    "running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
