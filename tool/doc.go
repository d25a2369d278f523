// Package tool defines tool specs, a registry, and the dispatch loop that
// lets a model call tools mid-conversation.
//
// A Tool couples a Spec (name, description, JSON Schema for arguments) with
// a Call implementation. SchemaFor derives the schema from a Go struct so
// argument parsing and the advertised schema cannot drift apart:
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema:"description=Query to search with"`
//	}
//
//	spec := tool.Spec{
//	    Name:        "email_search",
//	    Description: "Searches the user's emails.",
//	    Parameters:  tool.SchemaFor[SearchArgs](),
//	}
//
// Tools register themselves in init() via Register, mirroring how database
// drivers register. Dispatch runs the conversation loop: it advertises the
// tools, executes the calls the model requests, feeds results back, and
// repeats until the model answers in text or the turn limit is hit.
package tool
