package answer_test

import (
	"testing"

	"github.com/randalmurphal/parlay/answer"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"bare number",
			"121643937801",
			"121643937801",
		},
		{
			"last non-empty line",
			"Let me work through this.\n\n987987 * 123123 = 121643937801\n",
			"987987 * 123123 = 121643937801",
		},
		{
			"explicit marker wins over later line",
			"The answer is 42.\nHope that helps!",
			"42.",
		},
		{
			"last marker wins",
			"Answer: 40\nWait, recomputing.\nFinal answer: 42",
			"42",
		},
		{
			"mid-sentence answer is not a marker",
			"I cannot answer that directly.\n42",
			"42",
		},
		{
			"bare marker only at line start",
			"Answer: 7",
			"7",
		},
		{
			"code blocks stripped",
			"Here's how:\n```python\nprint(987987 * 123123)\n```\n121643937801",
			"121643937801",
		},
		{
			"empty input",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answer.Extract(tt.text))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims punctuation", "42.", "42"},
		{"lowercases", "Paris", "paris"},
		{"strips emphasis", "**121643937801**", "121643937801"},
		{"digit grouping", "121,643,937,801", "121643937801"},
		{"collapses whitespace", "  the   answer ", "the answer"},
		{"negative number", "-1,234.5", "-1234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answer.Normalize(tt.in))
		})
	}
}

func TestExtractNumeric(t *testing.T) {
	got, ok := answer.ExtractNumeric("The product is 121,643,937,801.")
	assert.True(t, ok)
	assert.Equal(t, "121643937801", got)

	got, ok = answer.ExtractNumeric("Working: 987987 * 123123 = 121643937801")
	assert.True(t, ok)
	assert.Equal(t, "121643937801", got)

	_, ok = answer.ExtractNumeric("no digits here")
	assert.False(t, ok)
}
