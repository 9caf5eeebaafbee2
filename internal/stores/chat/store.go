package chat

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store interface defines methods for conversation history persistence
type Store interface {
	// Append durably records one turn. Prior turns are never reordered or dropped.
	Append(ctx context.Context, turn *Turn) error

	// List returns every turn for a session in chronological order.
	// An unknown session yields an empty slice, not an error.
	List(ctx context.Context, sessionID string) ([]Turn, error)

	// Recent returns the latest limit turns for a session in chronological
	// order. Used to bound the context window handed to the model.
	Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error)

	Close() error
}

// StoreError wraps database failures so callers can distinguish persistence
// problems from model problems
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("chat store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// GormStore handles conversation history persistence using GORM. The same
// store serves MySQL, PostgreSQL, and SQLite; the backend is picked at open
// time so deployments can swap databases without code changes.
type GormStore struct {
	db *gorm.DB
}

// Open connects to the named backend and migrates the chat_history table
func Open(backend, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch backend {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	if err := db.AutoMigrate(&Turn{}); err != nil {
		return nil, &StoreError{Op: "migrate", Err: err}
	}

	return &GormStore{db: db}, nil
}

// Append saves a turn to the database
func (s *GormStore) Append(ctx context.Context, turn *Turn) error {
	result := s.db.WithContext(ctx).Create(turn)
	if result.Error != nil {
		return &StoreError{Op: "append", Err: result.Error}
	}

	return nil
}

// List retrieves all turns for a session in chronological order
func (s *GormStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	turns := []Turn{}
	result := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").Order("id ASC").
		Find(&turns)

	if result.Error != nil {
		return nil, &StoreError{Op: "list", Err: result.Error}
	}

	return turns, nil
}

// Recent retrieves the latest limit turns for a session. The query reads
// newest-first so LIMIT favors the most recent context, then the slice is
// reversed back to chronological order.
func (s *GormStore) Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		return s.List(ctx, sessionID)
	}

	turns := []Turn{}
	result := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&turns)

	if result.Error != nil {
		return nil, &StoreError{Op: "recent", Err: result.Error}
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
