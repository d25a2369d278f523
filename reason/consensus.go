package reason

import (
	"github.com/randalmurphal/parlay/answer"
	"github.com/randalmurphal/parlay/parallel"
)

// Consensus is the outcome of a majority vote over parallel samples.
type Consensus struct {
	// Answer is the winning normalized answer. Empty when no sample
	// succeeded.
	Answer string

	// Votes maps each normalized answer to how many samples produced it.
	Votes map[string]int

	// Agreement is winning votes divided by successful samples, in [0, 1].
	// Zero when no sample succeeded.
	Agreement float64

	// Indices lists the sample indices that voted for the winner.
	Indices []int

	// Samples is the number of successful samples counted.
	Samples int
}

// Unanimous reports whether every successful sample agreed.
func (c Consensus) Unanimous() bool {
	return c.Samples > 0 && len(c.Indices) == c.Samples
}

// ExtractFunc converts a completion's text into a comparable answer.
type ExtractFunc func(text string) string

// DefaultExtract is the vote's default answer pipeline: answer.Extract
// followed by answer.Normalize.
func DefaultExtract(text string) string {
	return answer.Normalize(answer.Extract(text))
}

// NumericExtract compares samples by their final number only. Samples
// without a number vote with their normalized full text instead.
func NumericExtract(text string) string {
	if n, ok := answer.ExtractNumeric(text); ok {
		return n
	}
	return DefaultExtract(text)
}

// Vote runs a majority vote over the successful samples using
// DefaultExtract.
func Vote(results []parallel.Result) Consensus {
	return VoteFunc(results, DefaultExtract)
}

// VoteFunc runs a majority vote with a custom extraction function.
// Ties break toward the answer first produced by the lowest sample index,
// so repeated votes over the same results are deterministic.
func VoteFunc(results []parallel.Result, extract ExtractFunc) Consensus {
	votes := make(map[string]int)
	indices := make(map[string][]int)
	firstSeen := make(map[string]int)
	samples := 0

	for _, r := range results {
		if !r.OK {
			continue
		}
		samples++
		key := extract(r.Response.Text())
		if _, seen := firstSeen[key]; !seen {
			firstSeen[key] = r.Index
		}
		votes[key]++
		indices[key] = append(indices[key], r.Index)
	}

	if samples == 0 {
		return Consensus{Votes: votes}
	}

	var winner string
	winnerSet := false
	for key, count := range votes {
		if !winnerSet ||
			count > votes[winner] ||
			(count == votes[winner] && firstSeen[key] < firstSeen[winner]) {
			winner = key
			winnerSet = true
		}
	}

	return Consensus{
		Answer:    winner,
		Votes:     votes,
		Agreement: float64(votes[winner]) / float64(samples),
		Indices:   indices[winner],
		Samples:   samples,
	}
}
