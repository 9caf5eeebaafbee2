package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"llm-chatbot-api/internal/chatbot"
	chatstore "llm-chatbot-api/internal/stores/chat"
	"llm-chatbot-api/pkg/sdk"
)

// PostChat handles POST /chat: forward the message to the model and return
// the recorded turn
func PostChat(c *gin.Context) {
	// Parse request body
	var req sdk.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", sdk.ErrCodeInvalidInput).AsGinResponse())
		return
	}

	turn, err := GetService().Send(c.Request.Context(), req.SessionID, req.UserID, req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSDKTurn(*turn))
}

// GetHistory handles GET /history/:session_id: the full ordered transcript,
// an empty array when the session has no turns
func GetHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	turns, err := GetService().History(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to read session history", sdk.ErrCodeStoreFailure).AsGinResponse())
		return
	}

	out := make([]sdk.Turn, 0, len(turns))
	for _, turn := range turns {
		out = append(out, toSDKTurn(turn))
	}

	c.JSON(http.StatusOK, out)
}

// respondChatError maps conversation manager failures onto distinct HTTP
// statuses and stable error codes
func respondChatError(c *gin.Context, err error) {
	var chatErr *chatbot.Error
	if !errors.As(err, &chatErr) {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Internal server error", sdk.ErrCodeStoreFailure).AsGinResponse())
		return
	}

	switch chatErr.Code {
	case chatbot.ErrorInvalidInput:
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Message must not be empty", sdk.ErrCodeInvalidInput).AsGinResponse())

	case chatbot.ErrorModelFailure:
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Could not generate a reply", sdk.ErrCodeModelFailure).AsGinResponse())

	case chatbot.ErrorStoreFailure:
		if chatErr.Turn != nil {
			// Generation succeeded but the write failed; hand the reply back
			// inside the error envelope so it isn't lost.
			resp := sdk.ApiResponse[sdk.Turn]{
				Status:  sdk.StatusError,
				Code:    http.StatusInternalServerError,
				Message: "Reply generated but not saved",
				Error:   sdk.ErrCodeReplyNotSaved,
				Data:    toSDKTurn(*chatErr.Turn),
			}
			c.JSON(resp.AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to read conversation history", sdk.ErrCodeStoreFailure).AsGinResponse())

	default:
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Internal server error", sdk.ErrCodeStoreFailure).AsGinResponse())
	}
}

// Helper method to convert internal turns to sdk turns
func toSDKTurn(turn chatstore.Turn) sdk.Turn {
	return sdk.Turn{
		SessionID:         turn.SessionID,
		UserID:            turn.UserID,
		UserMessage:       turn.UserMessage,
		AssistantResponse: turn.AssistantResponse,
		Timestamp:         turn.CreatedAt,
	}
}
