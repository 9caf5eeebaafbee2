package chat

import (
	"context"

	"github.com/gin-gonic/gin"

	chatstore "llm-chatbot-api/internal/stores/chat"
)

// ConversationService is the piece of the conversation manager the HTTP
// surface depends on
type ConversationService interface {
	Send(ctx context.Context, sessionID, userID, message string) (*chatstore.Turn, error)
	History(ctx context.Context, sessionID string) ([]chatstore.Turn, error)
}

var service ConversationService

// Init injects the conversation manager used by the controllers
func Init(svc ConversationService) {
	service = svc
}

// GetService returns the injected conversation manager
func GetService() ConversationService {
	return service
}

// RegisterRoutes registers the routes for the chat module
func RegisterRoutes(g *gin.RouterGroup) {
	// Send a message and get the model's reply
	g.POST("/chat", PostChat)

	// List every turn of a session
	g.GET("/history/:session_id", GetHistory)
}
