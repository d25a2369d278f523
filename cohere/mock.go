package cohere

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockClient is a test double for Chatter.
// It supports fixed responses, sequential responses, error injection, and
// custom handlers.
type MockClient struct {
	mu          sync.Mutex
	responses   []string
	responseIdx int
	err         error
	errOnce     int // remaining times to return err before succeeding
	chatFunc    func(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	toolCalls   []ToolCall

	// Calls tracks all requests for assertions.
	Calls []ChatRequest
}

// NewMockClient creates a mock that returns a fixed text response.
func NewMockClient(response string) *MockClient {
	return &MockClient{responses: []string{response}}
}

// WithResponses configures sequential responses.
// Each call to Chat returns the next response in the list, cycling back to
// the beginning after exhausting all responses.
func (m *MockClient) WithResponses(responses ...string) *MockClient {
	m.responses = responses
	m.responseIdx = 0
	return m
}

// WithError configures the mock to always return an error.
func (m *MockClient) WithError(err error) *MockClient {
	m.err = err
	m.errOnce = 0
	return m
}

// WithErrorsThenSuccess configures the mock to fail n times and then return
// configured responses. Useful for exercising retry paths.
func (m *MockClient) WithErrorsThenSuccess(err error, n int) *MockClient {
	m.err = err
	m.errOnce = n
	return m
}

// WithChatFunc sets a custom handler for Chat calls.
// This takes precedence over fixed responses.
func (m *MockClient) WithChatFunc(fn func(ctx context.Context, req ChatRequest) (*ChatResponse, error)) *MockClient {
	m.chatFunc = fn
	return m
}

// WithToolCalls makes the next response request the given tool calls with a
// TOOL_CALL finish reason. Cleared after one use so a dispatch loop can
// terminate.
func (m *MockClient) WithToolCalls(calls ...ToolCall) *MockClient {
	m.toolCalls = calls
	return m
}

// NewToolCall builds a tool call with a fresh ID, for mock configuration.
func NewToolCall(name, arguments string) ToolCall {
	return ToolCall{
		ID:   uuid.NewString(),
		Type: "function",
		Function: ToolCallFunction{
			Name:      name,
			Arguments: arguments,
		},
	}
}

// Chat implements Chatter.
func (m *MockClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}

	if m.err != nil {
		err := m.err
		if m.errOnce > 0 {
			m.errOnce--
			if m.errOnce == 0 {
				m.err = nil
			}
		}
		return nil, err
	}

	if len(m.toolCalls) > 0 {
		calls := m.toolCalls
		m.toolCalls = nil
		return &ChatResponse{
			ID:           uuid.NewString(),
			FinishReason: "TOOL_CALL",
			Message: AssistantMessage{
				Role:      RoleAssistant,
				ToolCalls: calls,
				ToolPlan:  "calling tools",
			},
		}, nil
	}

	response := ""
	if len(m.responses) > 0 {
		response = m.responses[m.responseIdx%len(m.responses)]
		m.responseIdx++
	}

	return &ChatResponse{
		ID:           uuid.NewString(),
		FinishReason: "COMPLETE",
		Message: AssistantMessage{
			Role:    RoleAssistant,
			Content: []ContentBlock{{Type: "text", Text: response}},
		},
		Usage: Usage{
			Tokens: TokenCount{InputTokens: 10, OutputTokens: len(response) / 4},
		},
	}, nil
}

// CallCount returns the number of Chat calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or nil if none were made.
func (m *MockClient) LastCall() *ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
