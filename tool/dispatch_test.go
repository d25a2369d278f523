package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/randalmurphal/parlay/cohere"
	"github.com/randalmurphal/parlay/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatchRequest() cohere.ChatRequest {
	return cohere.ChatRequest{
		Model:    "command-a-03-2025",
		Messages: []cohere.Message{cohere.NewUserMessage("find the lunch email")},
	}
}

func TestDispatch_NoToolCalls(t *testing.T) {
	mock := cohere.NewMockClient("plain answer")

	resp, err := tool.Dispatch(context.Background(), mock, dispatchRequest(), []tool.Tool{&echoTool{}})
	require.NoError(t, err)
	assert.Equal(t, "plain answer", resp.Text())
	assert.Equal(t, 1, mock.CallCount())

	// Tools were advertised even though none were called.
	require.Len(t, mock.LastCall().Tools, 1)
	assert.Equal(t, "echo", mock.LastCall().Tools[0].Function.Name)
}

func TestDispatch_SingleToolRound(t *testing.T) {
	call := cohere.NewToolCall("echo", `{"text":"hello"}`)
	mock := cohere.NewMockClient("final answer").WithToolCalls(call)

	echo := &echoTool{}
	resp, err := tool.Dispatch(context.Background(), mock, dispatchRequest(), []tool.Tool{echo})
	require.NoError(t, err)
	assert.Equal(t, "final answer", resp.Text())
	assert.Equal(t, 2, mock.CallCount())

	// Second request carries the assistant tool turn and the tool result.
	msgs := mock.LastCall().Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, cohere.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].ToolCalls, 1)
	assert.Equal(t, cohere.RoleTool, msgs[2].Role)
	assert.Equal(t, call.ID, msgs[2].ToolCallID)
	assert.JSONEq(t, `{"echo":"hello"}`, msgs[2].Content)
}

func TestDispatch_UnknownToolFeedsErrorBack(t *testing.T) {
	call := cohere.NewToolCall("nope", `{}`)
	mock := cohere.NewMockClient("recovered").WithToolCalls(call)

	resp, err := tool.Dispatch(context.Background(), mock, dispatchRequest(), []tool.Tool{&echoTool{}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Text())

	msgs := mock.LastCall().Messages
	result := msgs[len(msgs)-1]
	assert.Equal(t, cohere.RoleTool, result.Role)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Content), &payload))
	assert.Contains(t, payload["error"], "unknown tool")
}

func TestDispatch_ToolErrorFeedsErrorBack(t *testing.T) {
	call := cohere.NewToolCall("echo", `{"text":"x"}`)
	mock := cohere.NewMockClient("recovered").WithToolCalls(call)

	broken := &echoTool{err: errTool}
	resp, err := tool.Dispatch(context.Background(), mock, dispatchRequest(), []tool.Tool{broken})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Text())

	msgs := mock.LastCall().Messages
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(msgs[len(msgs)-1].Content), &payload))
	assert.Equal(t, "tool exploded", payload["error"])
}

func TestDispatch_MaxTurns(t *testing.T) {
	// A handler that always requests another tool call never converges.
	mock := cohere.NewMockClient("").WithChatFunc(
		func(ctx context.Context, req cohere.ChatRequest) (*cohere.ChatResponse, error) {
			return &cohere.ChatResponse{
				FinishReason: "TOOL_CALL",
				Message: cohere.AssistantMessage{
					Role:      cohere.RoleAssistant,
					ToolCalls: []cohere.ToolCall{cohere.NewToolCall("echo", `{"text":"again"}`)},
				},
			}, nil
		})

	_, err := tool.Dispatch(context.Background(), mock, dispatchRequest(),
		[]tool.Tool{&echoTool{}}, tool.WithMaxTurns(3))
	assert.ErrorIs(t, err, tool.ErrMaxTurns)
	assert.Equal(t, 3, mock.CallCount())
}

func TestDispatch_ClientErrorAborts(t *testing.T) {
	apiErr := cohere.NewError("chat", 401, cohere.ErrUnauthorized, false)
	mock := cohere.NewMockClient("").WithError(apiErr)

	_, err := tool.Dispatch(context.Background(), mock, dispatchRequest(), []tool.Tool{&echoTool{}})
	assert.ErrorIs(t, err, cohere.ErrUnauthorized)
}
