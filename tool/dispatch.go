package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/parlay/cohere"
)

// DefaultMaxTurns bounds the dispatch loop.
const DefaultMaxTurns = 10

// ErrMaxTurns indicates the model was still requesting tools when the turn
// limit was reached.
var ErrMaxTurns = errors.New("tool loop exceeded turn limit")

// DispatchOption configures a Dispatch run.
type DispatchOption func(*dispatchConfig)

type dispatchConfig struct {
	maxTurns int
	logger   *slog.Logger
}

// WithMaxTurns sets the turn limit. Values < 1 fall back to the default.
func WithMaxTurns(n int) DispatchOption {
	return func(c *dispatchConfig) {
		if n >= 1 {
			c.maxTurns = n
		}
	}
}

// WithLogger sets the structured logger used for per-call logging.
func WithLogger(logger *slog.Logger) DispatchOption {
	return func(c *dispatchConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Dispatch runs the tool-use conversation loop.
//
// The given tools are advertised with the request. While the model responds
// with tool calls, each call is executed and its result appended to the
// conversation, then the conversation is re-issued. The loop ends when the
// model produces a text answer, the context is canceled, or the turn limit
// is hit (ErrMaxTurns).
//
// A call to an unadvertised tool, bad arguments, or a tool execution error
// does not abort the loop: the error is serialized as the tool result so
// the model can recover.
func Dispatch(ctx context.Context, client cohere.Chatter, req cohere.ChatRequest, tools []Tool, opts ...DispatchOption) (*cohere.ChatResponse, error) {
	cfg := dispatchConfig{maxTurns: DefaultMaxTurns, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The loop appends to the conversation; copy so the caller's slice is
	// untouched and concurrent dispatches of the same request don't share
	// a backing array.
	msgs := make([]cohere.Message, len(req.Messages), len(req.Messages)+4)
	copy(msgs, req.Messages)
	req.Messages = msgs

	byName := make(map[string]Tool, len(tools))
	req.Tools = make([]cohere.Tool, 0, len(tools))
	for _, t := range tools {
		spec := t.Spec()
		byName[spec.Name] = t
		req.Tools = append(req.Tools, spec.WireTool())
	}

	for turn := 0; turn < cfg.maxTurns; turn++ {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return nil, err
		}
		if !resp.HasToolCalls() {
			return resp, nil
		}

		// Echo the assistant's tool-call turn, then answer each call.
		req.Messages = append(req.Messages, cohere.Message{
			Role:      cohere.RoleAssistant,
			ToolCalls: resp.Message.ToolCalls,
			ToolPlan:  resp.Message.ToolPlan,
		})

		for _, call := range resp.Message.ToolCalls {
			result := execute(ctx, byName, call, cfg.logger)
			req.Messages = append(req.Messages, cohere.NewToolResultMessage(call.ID, result))
		}
	}

	return nil, ErrMaxTurns
}

// execute runs one tool call, serializing failures as results so the model
// can see them.
func execute(ctx context.Context, byName map[string]Tool, call cohere.ToolCall, logger *slog.Logger) string {
	name := call.Function.Name

	t, ok := byName[name]
	if !ok {
		logger.Warn("model requested unadvertised tool", "tool", name)
		return errorResult(fmt.Sprintf("unknown tool %q", name))
	}

	logger.Debug("tool call", "tool", name, "call_id", call.ID)

	out, err := t.Call(ctx, json.RawMessage(call.Function.Arguments))
	if err != nil {
		logger.Warn("tool call failed", "tool", name, "err", err)
		return errorResult(err.Error())
	}

	data, err := json.Marshal(out)
	if err != nil {
		logger.Warn("tool result not serializable", "tool", name, "err", err)
		return errorResult("tool result could not be serialized")
	}
	return string(data)
}

func errorResult(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}
