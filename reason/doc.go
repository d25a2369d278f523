// Package reason reconciles parallel samples into a single answer.
//
// Two strategies are provided:
//
//   - Vote: majority vote over normalized answers. Cheap, works well when
//     the problem has a short canonical answer (arithmetic, multiple
//     choice).
//   - Fuse: a second model call that reads every candidate and writes the
//     reconciled answer. Costs one more completion but handles free-form
//     answers that never match exactly.
//
// Example usage:
//
//	results := parallel.ChatN(ctx, client, 5, req)
//	verdict := reason.Vote(results)
//	if verdict.Agreement < 0.5 {
//	    final, err := reason.Fuse(ctx, client, question, results)
//	    ...
//	}
package reason
