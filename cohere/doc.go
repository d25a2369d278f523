// Package cohere implements a client for the Cohere Chat API (v2).
//
// The client covers the subset of the API that parallel reasoning needs:
// non-streaming chat completions with optional tool use. Authentication uses
// an API key, read from the CO_API_KEY environment variable by default.
//
// Core types:
//   - Client: HTTP client for POST /v2/chat, safe for concurrent use
//   - ChatRequest / ChatResponse: the wire request and response
//   - Message: a conversation turn (user, assistant, system, tool)
//   - Tool / ToolCall: function definitions and invocation requests
//
// Example usage:
//
//	client, err := cohere.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Chat(ctx, cohere.ChatRequest{
//	    Model:    "command-a-03-2025",
//	    Messages: []cohere.Message{cohere.NewUserMessage("Hello")},
//	})
//
// Errors are wrapped in *Error and carry a Retryable flag; use IsRetryable
// to decide whether an attempt is worth repeating.
//
// For tests, MockClient implements the same Chat method with fixed or
// sequential responses and call tracking.
package cohere
