package reason_test

import (
	"errors"
	"testing"

	"github.com/randalmurphal/parlay/cohere"
	"github.com/randalmurphal/parlay/parallel"
	"github.com/randalmurphal/parlay/reason"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(index int, text string) parallel.Result {
	return parallel.Result{
		Index: index,
		OK:    true,
		Response: &cohere.ChatResponse{
			FinishReason: "COMPLETE",
			Message: cohere.AssistantMessage{
				Role:    cohere.RoleAssistant,
				Content: []cohere.ContentBlock{{Type: "text", Text: text}},
			},
		},
	}
}

func failedResult(index int) parallel.Result {
	return parallel.Result{Index: index, Err: errors.New("boom")}
}

func TestVote_Majority(t *testing.T) {
	results := []parallel.Result{
		sampleResult(0, "121643937801"),
		sampleResult(1, "The answer is 121,643,937,801."),
		sampleResult(2, "121643937802"),
		sampleResult(3, "121643937801"),
		failedResult(4),
	}

	c := reason.Vote(results)

	assert.Equal(t, "121643937801", c.Answer)
	assert.Equal(t, 4, c.Samples)
	assert.Equal(t, 3, c.Votes["121643937801"])
	assert.Equal(t, 1, c.Votes["121643937802"])
	assert.InDelta(t, 0.75, c.Agreement, 1e-9)
	assert.Equal(t, []int{0, 1, 3}, c.Indices)
	assert.False(t, c.Unanimous())
}

func TestVote_Unanimous(t *testing.T) {
	results := []parallel.Result{
		sampleResult(0, "Paris"),
		sampleResult(1, "paris."),
		sampleResult(2, "**Paris**"),
	}

	c := reason.Vote(results)

	assert.Equal(t, "paris", c.Answer)
	assert.True(t, c.Unanimous())
	assert.Equal(t, 1.0, c.Agreement)
}

func TestVote_TieBreaksTowardLowestIndex(t *testing.T) {
	results := []parallel.Result{
		sampleResult(0, "blue"),
		sampleResult(1, "green"),
		sampleResult(2, "green"),
		sampleResult(3, "blue"),
	}

	c := reason.Vote(results)

	// blue first appeared at index 0, green at index 1.
	assert.Equal(t, "blue", c.Answer)
	assert.InDelta(t, 0.5, c.Agreement, 1e-9)
}

func TestVote_AllFailed(t *testing.T) {
	c := reason.Vote([]parallel.Result{failedResult(0), failedResult(1)})

	assert.Empty(t, c.Answer)
	assert.Zero(t, c.Samples)
	assert.Zero(t, c.Agreement)
	assert.False(t, c.Unanimous())
}

func TestVote_Empty(t *testing.T) {
	c := reason.Vote(nil)
	assert.Empty(t, c.Answer)
	assert.Zero(t, c.Agreement)
}

func TestVoteFunc_Numeric(t *testing.T) {
	results := []parallel.Result{
		sampleResult(0, "After multiplying, I get 121643937801 as the result."),
		sampleResult(1, "121,643,937,801"),
		sampleResult(2, "It's 121643937801, final."),
	}

	c := reason.VoteFunc(results, reason.NumericExtract)

	assert.Equal(t, "121643937801", c.Answer)
	assert.True(t, c.Unanimous())
}

func TestVote_Deterministic(t *testing.T) {
	results := []parallel.Result{
		sampleResult(0, "a"),
		sampleResult(1, "b"),
		sampleResult(2, "c"),
	}

	first := reason.Vote(results)
	for i := 0; i < 20; i++ {
		require.Equal(t, first.Answer, reason.Vote(results).Answer)
	}
}
