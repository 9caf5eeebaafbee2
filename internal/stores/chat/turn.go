package chat

import (
	"time"
)

// Turn is one user-message/assistant-reply exchange within a session.
// Turns are append-only; a session exists implicitly once its first turn
// is written.
type Turn struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	SessionID string `json:"session_id" gorm:"size:64;not null;index"`
	UserID    string `json:"user_id" gorm:"size:255"`

	UserMessage       string `json:"user_message" gorm:"type:text;not null"`
	AssistantResponse string `json:"assistant_response" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"timestamp" gorm:"column:created_at"`
}

// TableName specifies the database table name for GORM
func (*Turn) TableName() string {
	return "chat_history"
}
