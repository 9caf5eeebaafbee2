package health

import (
	"github.com/gin-gonic/gin"

	"llm-chatbot-api/pkg/sdk"
)

// Return status of the API
func getStatus(c *gin.Context) {
	res := sdk.NewSuccessResponse[any]("LLM Chatbot API running successfully", nil)
	c.JSON(res.AsGinResponse())
}
