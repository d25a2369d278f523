package parallel

import (
	"time"

	"github.com/randalmurphal/parlay/cohere"
)

// Result is the outcome of one sample.
// Exactly one of Response and Err is set, according to OK.
type Result struct {
	// Index is the sample's position, 0..n-1.
	Index int

	// OK reports whether the sample succeeded.
	OK bool

	// Response is the completion, when OK.
	Response *cohere.ChatResponse

	// Err is the final error after retries were exhausted, when not OK.
	Err error

	// Attempts is the number of API calls made for this sample.
	Attempts int

	// Elapsed is the wall time spent on this sample, retries included.
	Elapsed time.Duration
}

// Successes filters results down to the ones that succeeded, preserving
// index order.
func Successes(results []Result) []Result {
	ok := make([]Result, 0, len(results))
	for _, r := range results {
		if r.OK {
			ok = append(ok, r)
		}
	}
	return ok
}

// Texts returns the response text of each successful result, in index order.
func Texts(results []Result) []string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		if r.OK {
			texts = append(texts, r.Response.Text())
		}
	}
	return texts
}
