// Package answer extracts comparable answers from model completions.
//
// Parallel samples of the same question rarely agree byte-for-byte: one
// completion says "The answer is 121,643,937,801." and another just prints
// the number. Extract pulls the final answer out of the surrounding prose
// and Normalize canonicalizes it so the reason package can count votes.
//
// Example usage:
//
//	got := answer.Normalize(answer.Extract(resp.Text()))
package answer
