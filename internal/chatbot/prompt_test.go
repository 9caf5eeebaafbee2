package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chatbot-api/internal/llm"
	chatstore "llm-chatbot-api/internal/stores/chat"
)

func TestBuildMessagesEmptyHistory(t *testing.T) {
	messages := buildMessages(nil, "What is LangChain?")

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, systemPrompt, messages[0].Content)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Equal(t, "What is LangChain?", messages[1].Content)
}

func TestBuildMessagesWithHistory(t *testing.T) {
	history := []chatstore.Turn{
		{UserMessage: "first question", AssistantResponse: "first answer"},
		{UserMessage: "second question", AssistantResponse: "second answer"},
	}

	messages := buildMessages(history, "third question")

	require.Len(t, messages, 6)

	want := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: "first question"},
		{Role: llm.RoleAssistant, Content: "first answer"},
		{Role: llm.RoleUser, Content: "second question"},
		{Role: llm.RoleAssistant, Content: "second answer"},
		{Role: llm.RoleUser, Content: "third question"},
	}
	assert.Equal(t, want, messages)
}
