package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"llm-chatbot-api/pkg/sdk"
	"llm-chatbot-api/pkg/utils"
)

// Terminal chat client against a running API instance. This plays the role
// of the separate frontend process.
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	client := sdk.NewClient(cfg.GetWithDefault("API_URL", "http://localhost:8080"))

	if err := startInteractiveSession(context.Background(), client, cfg.Get("CHAT_USER_ID")); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// startInteractiveSession runs the read-ask-print loop for one chat session
func startInteractiveSession(ctx context.Context, client *sdk.Client, userID string) error {
	if userID == "" {
		userID = "commandline-user"
	}

	// One session per program run, like the web frontend does
	sessionID := uuid.NewString()

	fmt.Println("LLM chatbot started. Type 'exit' to quit, 'history' to reprint the session.")
	fmt.Printf("Session: %s\n", sessionID)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if input == "history" {
			if err := printHistory(ctx, client, sessionID); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		turn, err := client.Chat(ctx, sdk.ChatRequest{
			UserID:    userID,
			Message:   input,
			SessionID: sessionID,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("Assistant: %s\n", turn.AssistantResponse)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// printHistory reprints the full transcript of the current session
func printHistory(ctx context.Context, client *sdk.Client, sessionID string) error {
	turns, err := client.History(ctx, sessionID)
	if err != nil {
		return err
	}

	if len(turns) == 0 {
		fmt.Println("No turns recorded yet.")
		return nil
	}

	for _, turn := range turns {
		fmt.Printf("You: %s\nAssistant: %s\n", turn.UserMessage, turn.AssistantResponse)
	}
	return nil
}
