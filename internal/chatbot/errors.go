package chatbot

import (
	"fmt"

	chatstore "llm-chatbot-api/internal/stores/chat"
)

// ErrorCode identifies which half of the chat pipeline failed
type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorModelFailure ErrorCode = "MODEL_FAILURE"
	ErrorStoreFailure ErrorCode = "STORE_FAILURE"
)

// Error is the failure type returned by the conversation manager
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error

	// Turn carries the generated exchange when a reply was produced but the
	// write failed, so paid model output is never discarded.
	Turn *chatstore.Turn
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("chatbot: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("chatbot: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
