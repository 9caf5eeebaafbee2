package main

import (
	"log"
	"os"

	"llm-chatbot-api/internal/api"
	"llm-chatbot-api/internal/chatbot"
	"llm-chatbot-api/internal/llm"
	"llm-chatbot-api/internal/observability"
	chatstore "llm-chatbot-api/internal/stores/chat"
	"llm-chatbot-api/pkg/utils"
)

// Start the API server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config and tunable parameters
	cfg := utils.NewConfigFromEnv(envFile)

	params, err := utils.LoadParams(cfg.GetWithDefault("PARAMS_FILE", "params.yaml"))
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to load params: %v", err)
	}

	// Open the history store for the configured backend
	backend := cfg.GetWithDefault("STORAGE_BACKEND", "memory")

	var store chatstore.Store
	if backend == "memory" {
		store = chatstore.NewInMemoryStore()
	} else {
		store, err = chatstore.Open(backend, cfg.Get("DATABASE_URL"))
		if err != nil {
			log.Fatalf("[API-MAIN]: Failed to open %s store: %v", backend, err)
		}
	}
	defer store.Close()

	// Build the model client; USE_MOCK_LLM runs without an upstream provider
	var client llm.Client
	if cfg.GetBool("USE_MOCK_LLM") {
		client = &llm.MockClient{}
	} else {
		client, err = llm.NewOpenAIClient(llm.OpenAIOptions{
			APIKey:          cfg.Get("OPENAI_API_KEY"),
			BaseURL:         cfg.Get("OPENAI_BASE_URL"),
			Model:           params.Chatbot.Model,
			Temperature:     params.Chatbot.Temperature,
			MaxOutputTokens: params.Chatbot.MaxOutputTokens,
		})
		if err != nil {
			log.Fatalf("[API-MAIN]: Failed to create model client: %v", err)
		}
	}

	service, err := chatbot.NewService(store, client, chatbot.Options{
		HistoryLimit:     params.Chatbot.ChatHistoryLimit,
		RetryMaxAttempts: params.Chatbot.RetryMaxAttempts,
		RetryBackoffBase: params.Chatbot.RetryBackoffBase(),
		RequestTimeout:   params.Chatbot.RequestTimeout(),
	})
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to create conversation service: %v", err)
	}

	observability.Logger().Info("starting chatbot api",
		"storage_backend", backend,
		"model", params.Chatbot.Model,
		"mock_llm", cfg.GetBool("USE_MOCK_LLM"),
	)

	if err := api.Start(cfg, service); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
