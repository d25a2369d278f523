package parallel

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/randalmurphal/parlay/cohere"
)

// ChatN issues the same request n times across a bounded worker pool and
// returns one Result per sample, ordered by index. Every slot is filled:
// samples that exhaust their retries carry the final error instead of a
// response. n <= 0 returns an empty slice.
//
// Transient failures (rate limits, 5xx, timeouts) are retried with
// exponential backoff plus uniform jitter. Context cancellation stops
// in-flight samples without retrying; their results report ctx.Err().
func ChatN(ctx context.Context, client cohere.Chatter, n int, req cohere.ChatRequest, opts ...Option) []Result {
	if n <= 0 {
		return []Result{}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, n)
	indexes := make(chan int)

	workers := cfg.maxWorkers
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = sample(ctx, client, i, req, cfg)
			}
		}()
	}

	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// sample runs one request with retries.
func sample(ctx context.Context, client cohere.Chatter, index int, req cohere.ChatRequest, cfg config) Result {
	start := time.Now()
	var lastErr error

	for attempt := 1; attempt <= cfg.maxRetries; attempt++ {
		resp, err := client.Chat(ctx, req)
		if err == nil {
			return Result{
				Index:    index,
				OK:       true,
				Response: resp,
				Attempts: attempt,
				Elapsed:  time.Since(start),
			}
		}
		lastErr = err

		cfg.logger.Debug("sample attempt failed",
			"index", index,
			"attempt", attempt,
			"err", err)

		if ctx.Err() != nil || !cohere.IsRetryable(err) || attempt == cfg.maxRetries {
			return Result{
				Index:    index,
				Err:      lastErr,
				Attempts: attempt,
				Elapsed:  time.Since(start),
			}
		}

		// Wait out the backoff, but abandon the sample the moment the
		// context is canceled rather than issuing a dead-context attempt.
		timer := time.NewTimer(backoff(cfg, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{
				Index:    index,
				Err:      ctx.Err(),
				Attempts: attempt,
				Elapsed:  time.Since(start),
			}
		case <-timer.C:
		}
	}

	// Unreachable: the loop always returns.
	return Result{Index: index, Err: lastErr, Attempts: cfg.maxRetries, Elapsed: time.Since(start)}
}

// backoff computes the delay before the next attempt:
// base * 2^(attempt-1) plus uniform jitter.
func backoff(cfg config, attempt int) time.Duration {
	d := cfg.backoffBase << (attempt - 1)
	if cfg.jitter > 0 {
		d += time.Duration(rand.Int64N(int64(cfg.jitter)))
	}
	return d
}
