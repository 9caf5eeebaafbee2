package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chatbot-api/internal/chatbot"
	chatstore "llm-chatbot-api/internal/stores/chat"
	"llm-chatbot-api/pkg/sdk"
)

// stubService returns canned results for controller tests
type stubService struct {
	turn    *chatstore.Turn
	history []chatstore.Turn
	err     error
}

func (s *stubService) Send(ctx context.Context, sessionID, userID, message string) (*chatstore.Turn, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.turn, nil
}

func (s *stubService) History(ctx context.Context, sessionID string) ([]chatstore.Turn, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func setupRouter(t *testing.T, svc ConversationService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(&engine.RouterGroup)
	Init(svc)
	return engine
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPostChatSuccess(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	router := setupRouter(t, &stubService{
		turn: &chatstore.Turn{
			SessionID:         "s1",
			UserID:            "u1",
			UserMessage:       "What is LangChain?",
			AssistantResponse: "LangChain is a framework for developing LLM applications.",
			CreatedAt:         ts,
		},
	})

	recorder := postChat(t, router, `{"user_id":"u1","message":"What is LangChain?","session_id":"s1"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var turn sdk.Turn
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &turn))
	assert.Equal(t, "s1", turn.SessionID)
	assert.Equal(t, "u1", turn.UserID)
	assert.Equal(t, "What is LangChain?", turn.UserMessage)
	assert.Equal(t, "LangChain is a framework for developing LLM applications.", turn.AssistantResponse)
	assert.True(t, ts.Equal(turn.Timestamp))
}

func TestPostChatMissingFields(t *testing.T) {
	router := setupRouter(t, &stubService{})

	recorder := postChat(t, router, `{"session_id":"s1"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope sdk.ApiResponse[any]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, sdk.StatusError, envelope.Status)
	assert.Equal(t, sdk.ErrCodeInvalidInput, envelope.Error)
}

func TestPostChatModelFailure(t *testing.T) {
	router := setupRouter(t, &stubService{
		err: &chatbot.Error{Code: chatbot.ErrorModelFailure, Reason: "generate_error", Err: errors.New("upstream down")},
	})

	recorder := postChat(t, router, `{"user_id":"u1","message":"hello"}`)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	var envelope sdk.ApiResponse[any]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, sdk.ErrCodeModelFailure, envelope.Error)
}

func TestPostChatReplyNotSaved(t *testing.T) {
	router := setupRouter(t, &stubService{
		err: &chatbot.Error{
			Code:   chatbot.ErrorStoreFailure,
			Reason: "append_error",
			Err:    errors.New("connection lost"),
			Turn: &chatstore.Turn{
				SessionID:         "s1",
				UserID:            "u1",
				UserMessage:       "hello",
				AssistantResponse: "a reply worth keeping",
			},
		},
	})

	recorder := postChat(t, router, `{"user_id":"u1","message":"hello","session_id":"s1"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var envelope sdk.ApiResponse[sdk.Turn]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, sdk.ErrCodeReplyNotSaved, envelope.Error)

	// The generated reply rides along in the error payload
	assert.Equal(t, "a reply worth keeping", envelope.Data.AssistantResponse)
}

func TestGetHistory(t *testing.T) {
	router := setupRouter(t, &stubService{
		history: []chatstore.Turn{
			{SessionID: "s1", UserMessage: "first", AssistantResponse: "one"},
			{SessionID: "s1", UserMessage: "second", AssistantResponse: "two"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/history/s1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var turns []sdk.Turn
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &turns))
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].UserMessage)
	assert.Equal(t, "second", turns[1].UserMessage)
}

func TestGetHistoryEmpty(t *testing.T) {
	router := setupRouter(t, &stubService{history: []chatstore.Turn{}})

	req := httptest.NewRequest(http.MethodGet, "/history/unknown", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestGetHistoryStoreFailure(t *testing.T) {
	router := setupRouter(t, &stubService{
		err: &chatbot.Error{Code: chatbot.ErrorStoreFailure, Reason: "history_read_error", Err: errors.New("timeout")},
	})

	req := httptest.NewRequest(http.MethodGet, "/history/s1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var envelope sdk.ApiResponse[any]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, sdk.ErrCodeStoreFailure, envelope.Error)
}
