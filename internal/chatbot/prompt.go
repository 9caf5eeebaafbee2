package chatbot

import (
	"llm-chatbot-api/internal/llm"
	chatstore "llm-chatbot-api/internal/stores/chat"
)

// systemPrompt anchors every request; the history supplies the rest of the context
const systemPrompt = "You are a helpful assistant who answers user queries accurately and politely. " +
	"You are aware of the previous conversation history provided below."

// buildMessages assembles the model input: system prompt, then prior turns as
// alternating user/assistant messages in chronological order, then the new
// question
func buildMessages(history []chatstore.Turn, question string) []llm.Message {
	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})

	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.UserMessage},
			llm.Message{Role: llm.RoleAssistant, Content: turn.AssistantResponse},
		)
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})
	return messages
}
