package sdk

import (
	"time"
)

// StatusType marks an API response as success or error
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents the error/status envelope returned on failures.
// Successful chat and history responses return their payloads directly.
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    T          `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// AsGinResponse converts the ApiResponse to a (status, body) pair for Gin
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// NewSuccessResponse builds a 200 envelope with a payload
func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope; errCode is a stable machine-readable code
func NewErrorResponse(code int, message, errCode string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Error:   errCode,
	}
}

/** Requests */

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

/** Responses */

// Turn is one recorded user-message/assistant-reply exchange
type Turn struct {
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	Timestamp         time.Time `json:"timestamp"`
}

// Machine-readable error codes returned in the envelope's error field
const (
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeModelFailure  = "model_failure"
	ErrCodeReplyNotSaved = "reply_not_saved"
	ErrCodeStoreFailure  = "store_failure"
)
