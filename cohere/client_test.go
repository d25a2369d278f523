package cohere_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/randalmurphal/parlay/cohere"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *cohere.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := cohere.NewClient(
		cohere.WithAPIKey("test-key"),
		cohere.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)
	return client
}

func simpleRequest() cohere.ChatRequest {
	return cohere.ChatRequest{
		Model:    "command-a-03-2025",
		Messages: []cohere.Message{cohere.NewUserMessage("what is 2+2?")},
	}
}

func TestClient_Chat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req cohere.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "command-a-03-2025", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, cohere.RoleUser, req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "gen-123",
			"finish_reason": "COMPLETE",
			"message": map[string]any{
				"role": "assistant",
				"content": []map[string]any{
					{"type": "text", "text": "4"},
				},
			},
			"usage": map[string]any{
				"tokens": map[string]int{"input_tokens": 12, "output_tokens": 1},
			},
		})
	})

	resp, err := client.Chat(context.Background(), simpleRequest())
	require.NoError(t, err)
	assert.Equal(t, "gen-123", resp.ID)
	assert.Equal(t, "COMPLETE", resp.FinishReason)
	assert.Equal(t, "4", resp.Text())
	assert.Equal(t, 12, resp.Usage.Tokens.InputTokens)
	assert.False(t, resp.HasToolCalls())
}

func TestClient_Chat_ToolCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "gen-456",
			"finish_reason": "TOOL_CALL",
			"message": map[string]any{
				"role":      "assistant",
				"tool_plan": "I will search the emails.",
				"tool_calls": []map[string]any{
					{
						"id":   "call-1",
						"type": "function",
						"function": map[string]any{
							"name":      "email_search",
							"arguments": `{"query":"invoice"}`,
						},
					},
				},
			},
		})
	})

	resp, err := client.Chat(context.Background(), simpleRequest())
	require.NoError(t, err)
	require.True(t, resp.HasToolCalls())
	call := resp.Message.ToolCalls[0]
	assert.Equal(t, "call-1", call.ID)
	assert.Equal(t, "email_search", call.Function.Name)
	assert.JSONEq(t, `{"query":"invoice"}`, call.Function.Arguments)
}

func TestClient_Chat_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		sentinel  error
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, cohere.ErrUnauthorized, false},
		{"forbidden", http.StatusForbidden, cohere.ErrUnauthorized, false},
		{"rate limited", http.StatusTooManyRequests, cohere.ErrRateLimited, true},
		{"bad request", http.StatusBadRequest, cohere.ErrInvalidRequest, false},
		{"too long", http.StatusUnprocessableEntity, cohere.ErrContextTooLong, false},
		{"server error", http.StatusInternalServerError, cohere.ErrUnavailable, true},
		{"bad gateway", http.StatusBadGateway, cohere.ErrUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			})

			_, err := client.Chat(context.Background(), simpleRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.retryable, cohere.IsRetryable(err))

			var apiErr *cohere.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_Chat_Validation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	_, err := client.Chat(context.Background(), cohere.ChatRequest{
		Messages: []cohere.Message{cohere.NewUserMessage("hi")},
	})
	assert.ErrorIs(t, err, cohere.ErrInvalidRequest)

	_, err = client.Chat(context.Background(), cohere.ChatRequest{Model: "command-a-03-2025"})
	assert.ErrorIs(t, err, cohere.ErrInvalidRequest)
}

func TestClient_Chat_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, simpleRequest())
	require.Error(t, err)
	assert.False(t, cohere.IsRetryable(err))
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	t.Setenv("CO_API_KEY", "")

	_, err := cohere.NewClient()
	assert.ErrorIs(t, err, cohere.ErrMissingAPIKey)
	assert.True(t, cohere.IsAuthError(err))
}

func TestNewClient_APIKeyFromEnv(t *testing.T) {
	t.Setenv("CO_API_KEY", "env-key")

	client, err := cohere.NewClient()
	require.NoError(t, err)
	require.NotNil(t, client)
}
