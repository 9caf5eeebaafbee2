package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Message roles understood by the chat completions API
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a provider-agnostic chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines how the conversation manager talks to a hosted model
type Client interface {
	// Generate produces a reply for the given ordered messages. Failures are
	// returned as *ModelError so callers can tell transient from permanent.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// OpenAIOptions configures the hosted model client. BaseURL allows pointing
// at any OpenAI-compatible endpoint (Groq, Gemini's compatibility layer, a
// local proxy) without code changes.
type OpenAIOptions struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// OpenAIClient calls a hosted LLM through the chat completions API
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIClient creates a model client from the given options
func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("llm: api key must not be empty")
	}
	if opts.Model == "" {
		return nil, errors.New("llm: model must not be empty")
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAIClient{
		client:      openai.NewClient(requestOpts...),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxOutputTokens,
	}, nil
}

// Generate sends the messages to the model and returns the reply text
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toCompletionMessages(messages),
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &ModelError{Err: errors.New("model returned an empty completion")}
	}

	return completion.Choices[0].Message.Content, nil
}

// toCompletionMessages converts provider-agnostic messages to SDK params
func toCompletionMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
