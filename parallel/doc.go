// Package parallel runs the same chat request many times concurrently.
//
// ChatN is the entry point: it issues n copies of a request across a bounded
// worker pool, retrying transient failures with exponential backoff and
// jitter, and returns one Result per sample ordered by index. This is the
// sampling stage of parallel reasoning; the reason package consumes the
// results.
//
// Example usage:
//
//	results := parallel.ChatN(ctx, client, 5, req,
//	    parallel.WithMaxWorkers(4),
//	    parallel.WithMaxRetries(3),
//	)
//	for _, r := range results {
//	    if r.OK {
//	        fmt.Printf("[%d] OK: %s\n", r.Index, r.Response.Text())
//	    } else {
//	        fmt.Printf("[%d] FAIL: %v\n", r.Index, r.Err)
//	    }
//	}
package parallel
