package reason

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/parlay/cohere"
	"github.com/randalmurphal/parlay/parallel"
)

// ErrNoCandidates indicates Fuse was called without any successful samples.
var ErrNoCandidates = errors.New("no candidate answers to fuse")

const fuseSystemPrompt = `You are reconciling several independent attempts at the same question.
Read every candidate answer, identify where they agree and disagree, and
produce the single best final answer. If candidates conflict, reason about
which is correct rather than picking the most common. Reply with the final
answer only.`

// FuseOption configures a Fuse call.
type FuseOption func(*fuseConfig)

type fuseConfig struct {
	model       string
	temperature float64
}

// WithFuseModel sets the model used for the fusion call.
// Defaults to "command-a-03-2025".
func WithFuseModel(model string) FuseOption {
	return func(c *fuseConfig) { c.model = model }
}

// WithFuseTemperature sets the fusion sampling temperature. The default is
// 0.0: fusion should be deterministic even though sampling ran hot.
func WithFuseTemperature(t float64) FuseOption {
	return func(c *fuseConfig) { c.temperature = t }
}

// Fuse asks the model to reconcile the successful samples' answers into one
// final answer. Returns ErrNoCandidates without calling the API when every
// sample failed.
func Fuse(ctx context.Context, client cohere.Chatter, question string, results []parallel.Result, opts ...FuseOption) (*cohere.ChatResponse, error) {
	cfg := fuseConfig{model: "command-a-03-2025"}
	for _, opt := range opts {
		opt(&cfg)
	}

	candidates := parallel.Texts(results)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Question:\n%s\n\n", question)
	fmt.Fprintf(&b, "%d candidate answers follow.\n\n", len(candidates))
	for i, c := range candidates {
		fmt.Fprintf(&b, "--- Candidate %d ---\n%s\n\n", i+1, strings.TrimSpace(c))
	}
	b.WriteString("Final answer:")

	req := cohere.ChatRequest{
		Model: cfg.model,
		Messages: []cohere.Message{
			cohere.NewSystemMessage(fuseSystemPrompt),
			cohere.NewUserMessage(b.String()),
		},
		Temperature: cohere.Temp(cfg.temperature),
	}

	return client.Chat(ctx, req)
}
