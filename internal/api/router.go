package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/partchat/internal/api/admin"
	"github.com/liliang-cn/partchat/internal/api/catalog"
	"github.com/liliang-cn/partchat/internal/api/chat"
	"github.com/liliang-cn/partchat/internal/api/middleware"
	"github.com/liliang-cn/partchat/internal/service"
	"go.uber.org/zap"
)

const healthPath = "/api/health"

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	catalogService *service.CatalogService,
	adminService *service.AdminService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, healthPath))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "PartSelect Chat API is running"})
	})

	api := r.Group("/api")

	chatHandler := chat.NewHandler(chatService)
	chatHandler.RegisterRoutes(api.Group("/chat"))

	catalogHandler := catalog.NewHandler(catalogService)
	catalogHandler.RegisterPartRoutes(api.Group("/parts"))
	catalogHandler.RegisterProductRoutes(api.Group("/products"))

	// Admin API (requires API key)
	if cfg.APIKey == "" {
		logger.Warn("admin.api_key is empty, /api/admin serves chat history without authentication")
	}
	adminHandler := admin.NewHandler(adminService)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
