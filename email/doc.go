// Package email implements the workshop's email-search tool: lexical BM25
// search over a JSONL corpus of emails, with date-window filtering.
//
// The corpus is a file of one JSON object per line:
//
//	{"subject":"...","body":"...","sender":"...","received_date":"2025/09/12"}
//
// Store loads the corpus into memory and serves Search queries. SearchTool
// wraps a Store as a tool.Tool so the model can call it. Store.Watch
// reloads the corpus when the file changes, so a workshop host can edit the
// dataset mid-session.
//
// Dates use the YYYY/MM/DD format throughout. Filters also accept relative
// offsets like "3d", "2m" (30-day months), and "1y" (365-day years),
// resolved against the current time.
package email
