package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/parlay/tool"
)

// SearchArgs are the arguments the model supplies to the search tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"description=Query to search the user's emails with."`

	// After and Before bound the received date. Either an absolute
	// YYYY/MM/DD date or a relative offset like 7d.
	After  string `json:"after,omitempty" jsonschema:"description=Only emails received after this date (YYYY/MM/DD or a relative offset like 7d)."`
	Before string `json:"before,omitempty" jsonschema:"description=Only emails received before this date (YYYY/MM/DD or a relative offset like 7d)."`
}

// SearchTool exposes a Store to the model as the "email_search" tool.
type SearchTool struct {
	store *Store
}

// NewSearchTool wraps a store as a tool.
func NewSearchTool(store *Store) *SearchTool {
	return &SearchTool{store: store}
}

// Spec implements tool.Tool.
func (t *SearchTool) Spec() tool.Spec {
	return tool.Spec{
		Name:        "email_search",
		Description: "Performs a lexical search over the user's emails, returning the 10 most relevant email results.",
		Parameters:  tool.SchemaFor[SearchArgs](),
	}
}

// Call implements tool.Tool.
func (t *SearchTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	var a SearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("email_search: bad arguments: %w", err)
	}

	results, err := t.store.Search(a.Query, a.After, a.Before)
	if err != nil {
		return nil, fmt.Errorf("email_search: %w", err)
	}

	// An explicit empty list reads better to the model than null.
	if results == nil {
		results = []Email{}
	}
	return results, nil
}
