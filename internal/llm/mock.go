package llm

import (
	"context"
	"sync"
)

// MockClient is a canned model client for local development and tests
type MockClient struct {
	// Reply is returned on success; a default is used when empty
	Reply string
	// Err, when set, is returned from every call
	Err error

	mu    sync.Mutex
	calls int
}

// Generate returns the canned reply or error
func (m *MockClient) Generate(ctx context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "This is a mock reply. Set OPENAI_API_KEY and unset USE_MOCK_LLM to talk to a real model.", nil
}

// Calls returns how many times Generate was invoked
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
