// Package parlay provides utilities for parallel reasoning with the
// Cohere Chat API.
//
// Parallel reasoning samples the same prompt several times at a high
// temperature, then reconciles the candidate answers, either by majority
// vote or by a second model call that fuses the candidates. parlay packages
// each stage so they can be imported à la carte:
//
//   - cohere: Chat API v2 client with typed errors and a mock for tests
//   - parallel: bounded N-sample fan-out with retry and backoff
//   - answer: extract and normalize comparable answers from completions
//   - reason: majority voting and model-side fusion over samples
//   - tool: tool specs, registry, and the multi-turn dispatch loop
//   - email: the workshop's BM25 email-search tool over a JSONL corpus
//   - workshop: YAML problem definitions for the demo CLI
//
// # Quick Start
//
// Sample a prompt five times and take the majority answer:
//
//	client, _ := cohere.NewClient()
//	req := cohere.ChatRequest{
//	    Model:       "command-a-03-2025",
//	    Messages:    []cohere.Message{cohere.NewUserMessage("what is 987987 * 123123?")},
//	    Temperature: cohere.Temp(1.0),
//	}
//	results := parallel.ChatN(ctx, client, 5, req)
//	verdict := reason.Vote(results)
//	fmt.Println(verdict.Answer, verdict.Agreement)
//
// Tool use:
//
//	resp, _ := tool.Dispatch(ctx, client, req, tool.Available())
package parlay
