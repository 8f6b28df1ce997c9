package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dungeon-master/internal/chat"
	"dungeon-master/internal/mocks"
	"dungeon-master/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHistory() []models.Turn {
	return []models.Turn{
		models.UserTurn("Create a campaign."),
		models.AssistantTurn("Campaign: The Sunken Crown"),
	}
}

func TestOrchestrator_Exchange(t *testing.T) {
	ctx := context.Background()

	t.Run("success announces and clears progress", func(t *testing.T) {
		mockChat := mocks.NewMockChat(t)
		mockProgress := mocks.NewMockProgress(t)
		history := testHistory()

		mockProgress.On("Announce", "The Dungeon Master is responding...").Return().Once()
		mockProgress.On("Clear").Return().Once()
		mockChat.On("Exchange", mock.Anything, "I open the chest.", history).
			Return("The lid creaks open.", nil).Once()

		o := chat.NewOrchestrator(mockChat, mockProgress, chat.RuneCounter{}, "test-model", zap.NewNop())
		resp, err := o.Exchange(ctx, "I open the chest.", history, "The Dungeon Master is responding...")

		require.NoError(t, err)
		assert.Equal(t, "The lid creaks open.", resp)
		assert.Equal(t, testHistory(), history, "history must not be modified")
	})

	t.Run("transport error becomes a Failure", func(t *testing.T) {
		mockChat := mocks.NewMockChat(t)
		cause := errors.New("connection refused")
		history := testHistory()

		mockChat.On("Exchange", mock.Anything, "Look around.", history).Return("", cause).Once()

		o := chat.NewOrchestrator(mockChat, nil, nil, "test-model", zap.NewNop())
		resp, err := o.Exchange(ctx, "Look around.", history, "")

		require.Error(t, err)
		assert.Empty(t, resp)
		assert.ErrorIs(t, err, models.ErrChatFailed)
		assert.ErrorIs(t, err, cause)
		var failure *chat.Failure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, cause, failure.Cause)
		assert.Len(t, history, 2)
	})

	t.Run("blank response is a Failure", func(t *testing.T) {
		mockChat := mocks.NewMockChat(t)
		mockChat.On("Exchange", mock.Anything, "Hello?", mock.Anything).Return("  \n", nil).Once()

		o := chat.NewOrchestrator(mockChat, nil, nil, "test-model", zap.NewNop())
		_, err := o.Exchange(ctx, "Hello?", nil, "")
		assert.ErrorIs(t, err, models.ErrChatFailed)
	})

	t.Run("no retry after failure", func(t *testing.T) {
		mockChat := mocks.NewMockChat(t)
		mockChat.On("Exchange", mock.Anything, "Again", mock.Anything).Return("", errors.New("boom")).Once()

		o := chat.NewOrchestrator(mockChat, nil, nil, "test-model", zap.NewNop())
		_, err := o.Exchange(ctx, "Again", nil, "")
		require.Error(t, err)
		mockChat.AssertNumberOfCalls(t, "Exchange", 1)
	})

	t.Run("capability cannot reach caller history", func(t *testing.T) {
		mockChat := mocks.NewMockChat(t)
		history := testHistory()
		mockChat.On("Exchange", mock.Anything, "Go", mock.Anything).
			Run(func(args mock.Arguments) {
				h := args.Get(2).([]models.Turn)
				h[0].Content = "tampered"
			}).
			Return("ok", nil).Once()

		o := chat.NewOrchestrator(mockChat, nil, nil, "test-model", zap.NewNop())
		_, err := o.Exchange(ctx, "Go", history, "")
		require.NoError(t, err)
		assert.Equal(t, "Create a campaign.", history[0].Content)
	})
}

func TestRuneCounter(t *testing.T) {
	assert.Equal(t, 0, chat.RuneCounter{}.Count(""))
	assert.Equal(t, 1, chat.RuneCounter{}.Count("abc"))
	assert.Equal(t, 2, chat.RuneCounter{}.Count("abcde"))
}

type openAIRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAIClient_Exchange(t *testing.T) {
	var got openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4.1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "A goblin leaps out!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49}
		}`))
	}))
	defer server.Close()

	client, err := chat.NewClient(chat.Settings{
		ClientType:  "openai",
		BaseURL:     server.URL,
		APIKey:      "sk-test",
		Model:       "gpt-4.1",
		Temperature: 0.7,
		Preamble:    "You are a Dungeon Master.",
	}, zap.NewNop())
	require.NoError(t, err)

	resp, err := client.Exchange(context.Background(), "I search the bushes.", testHistory())
	require.NoError(t, err)
	assert.Equal(t, "A goblin leaps out!", resp)

	assert.Equal(t, "gpt-4.1", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You are a Dungeon Master.", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "Campaign: The Sunken Crown", got.Messages[2].Content)
	assert.Equal(t, "user", got.Messages[3].Role)
	assert.Equal(t, "I search the bushes.", got.Messages[3].Content)
}

func TestOpenAIClient_ExchangeErrors(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
		}))
		defer server.Close()

		client, err := chat.NewClient(chat.Settings{ClientType: "openai", BaseURL: server.URL, APIKey: "bad", Model: "m"}, zap.NewNop())
		require.NoError(t, err)
		_, err = client.Exchange(context.Background(), "Hi", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "x", "choices": []}`))
		}))
		defer server.Close()

		client, err := chat.NewClient(chat.Settings{ClientType: "openai", BaseURL: server.URL, APIKey: "k", Model: "m"}, zap.NewNop())
		require.NoError(t, err)
		_, err = client.Exchange(context.Background(), "Hi", nil)
		require.Error(t, err)
	})
}

type ollamaRequest struct {
	Model    string `json:"model"`
	Stream   *bool  `json:"stream"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOllamaClient_Exchange(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","created_at":"2025-01-01T00:00:00Z",` +
			`"message":{"role":"assistant","content":"Yes, it lives in water."},` +
			`"done":true,"done_reason":"stop","prompt_eval_count":30,"eval_count":6}` + "\n"))
	}))
	defer server.Close()

	client, err := chat.NewClient(chat.Settings{
		ClientType: "ollama",
		BaseURL:    server.URL + "/v1",
		Model:      "llama3",
		Preamble:   "You host Twenty Questions.",
	}, zap.NewNop())
	require.NoError(t, err)

	resp, err := client.Exchange(context.Background(), "Does it swim?", testHistory())
	require.NoError(t, err)
	assert.Equal(t, "Yes, it lives in water.", resp)

	assert.Equal(t, "llama3", got.Model)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "Does it swim?", got.Messages[3].Content)
}

func TestOllamaClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3' not found"}`))
	}))
	defer server.Close()

	client, err := chat.NewClient(chat.Settings{ClientType: "ollama", BaseURL: server.URL, Model: "llama3"}, zap.NewNop())
	require.NoError(t, err)
	_, err = client.Exchange(context.Background(), "Hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConstructors_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		client, err := chat.NewClient(chat.Settings{ClientType: "ollama", BaseURL: "http://localhost:11434", Model: "llama3"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, client)

		client, err = chat.NewClient(chat.Settings{ClientType: "openai", BaseURL: "http://localhost:1", APIKey: "k", Model: "m"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, client)

		assert.NotNil(t, chat.NewTiktokenCounter("gpt-4o", nil))
	})

	mockChat := mocks.NewMockChat(t)
	mockChat.On("Exchange", mock.Anything, "Hi", mock.Anything).Return("Hello.", nil).Once()
	o := chat.NewOrchestrator(mockChat, nil, nil, "test-model", nil)
	resp, err := o.Exchange(context.Background(), "Hi", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello.", resp)
}

func TestNewClient_UnknownType(t *testing.T) {
	_, err := chat.NewClient(chat.Settings{ClientType: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
