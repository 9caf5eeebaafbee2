package chatbot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"llm-chatbot-api/internal/llm"
	"llm-chatbot-api/internal/observability"
	chatstore "llm-chatbot-api/internal/stores/chat"
)

const (
	defaultHistoryLimit   = 5
	defaultRetryAttempts  = 3
	defaultBackoffBase    = 500 * time.Millisecond
	defaultRequestTimeout = 60 * time.Second
)

// Options holds the recognized tuning knobs for the conversation manager
type Options struct {
	// HistoryLimit caps how many prior turns are handed to the model
	HistoryLimit int
	// RetryMaxAttempts is the total number of model calls for one message
	RetryMaxAttempts int
	// RetryBackoffBase is the first retry delay; it doubles per attempt
	RetryBackoffBase time.Duration
	// RequestTimeout bounds each individual model call
	RequestTimeout time.Duration
}

// Service is the conversation manager: it loads session history, invokes the
// model with the combined context, and appends the new turn to the store.
type Service struct {
	store chatstore.Store
	llm   llm.Client
	opts  Options

	now   func() time.Time
	sleep func(time.Duration)

	// Per-session serialization so concurrent sends for one session cannot
	// interleave their list/append pair. Different sessions never contend.
	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// NewService creates a conversation manager over the given store and model client
func NewService(store chatstore.Store, client llm.Client, opts Options) (*Service, error) {
	if store == nil {
		return nil, errors.New("chatbot: store must not be nil")
	}
	if client == nil {
		return nil, errors.New("chatbot: llm client must not be nil")
	}

	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.RetryMaxAttempts <= 0 {
		opts.RetryMaxAttempts = defaultRetryAttempts
	}
	if opts.RetryBackoffBase <= 0 {
		opts.RetryBackoffBase = defaultBackoffBase
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	return &Service{
		store:    store,
		llm:      client,
		opts:     opts,
		now:      time.Now,
		sleep:    time.Sleep,
		sessions: make(map[string]*sync.Mutex),
	}, nil
}

// Send handles one inbound chat message: history, generation, persistence.
// A blank session id mints a fresh one.
func (s *Service) Send(ctx context.Context, sessionID, userID, message string) (*chatstore.Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, newError(ErrorInvalidInput, "empty_message", nil)
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"user_id", userID,
	)
	log.Info("handling chat message")

	history, err := s.store.Recent(ctx, sessionID, s.opts.HistoryLimit)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, newError(ErrorStoreFailure, "history_read_error", err)
	}

	reply, err := s.generateWithRetry(ctx, buildMessages(history, message))
	if err != nil {
		log.Error("model call failed", "error", err)
		return nil, newError(ErrorModelFailure, "generate_error", err)
	}

	turn := &chatstore.Turn{
		SessionID:         sessionID,
		UserID:            userID,
		UserMessage:       message,
		AssistantResponse: reply,
		CreatedAt:         s.now().UTC(),
	}

	// The reply is already paid for; persist it even if the caller has
	// disconnected mid-generation.
	if err := s.store.Append(context.WithoutCancel(ctx), turn); err != nil {
		log.Error("failed to append turn", "error", err)
		return nil, &Error{Code: ErrorStoreFailure, Reason: "append_error", Err: err, Turn: turn}
	}

	log.Info("chat turn recorded")
	return turn, nil
}

// History returns every turn for a session in chronological order
func (s *Service) History(ctx context.Context, sessionID string) ([]chatstore.Turn, error) {
	turns, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, newError(ErrorStoreFailure, "history_read_error", err)
	}
	return turns, nil
}

// generateWithRetry calls the model, retrying transient failures with
// exponential backoff up to the configured attempt count
func (s *Service) generateWithRetry(ctx context.Context, messages []llm.Message) (string, error) {
	var lastErr error

	for attempt := 0; attempt < s.opts.RetryMaxAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.opts.RetryBackoffBase << (attempt - 1))
		}

		callCtx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
		reply, err := s.llm.Generate(callCtx, messages)
		cancel()

		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !llm.IsTransient(err) {
			return "", err
		}
	}

	return "", lastErr
}

// lockSession acquires the mutex for one session, creating it on first use
func (s *Service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.sessions[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
