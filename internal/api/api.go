package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"llm-chatbot-api/pkg/utils"

	chat_module "llm-chatbot-api/internal/api/modules/chat"
	health_module "llm-chatbot-api/internal/api/modules/health"
)

// Start wires the HTTP surface and runs the server until it fails
func Start(cfg *utils.Config, service chat_module.ConversationService) error {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Tag every request so log lines can be correlated
	engine.Use(RequestID())

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes live at the root: GET /, POST /chat, GET /history/:session_id
	baseGroup := &engine.RouterGroup

	health_module.RegisterRoutes(baseGroup)

	chat_module.RegisterRoutes(baseGroup)
	chat_module.Init(service)

	// Then after performing initial setup, start the server
	return engine.Run(":" + port)
}
