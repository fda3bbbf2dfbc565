// Package mcp implements the Model Context Protocol server surface for
// the US Code search engine.
//
// The server speaks MCP over stdio and exposes five tools:
//
//   - search_us_code: full-text search across titles with optional
//     title/chapter/section filters, sort order, and a result limit
//   - get_search_suggestions: substring autocomplete suggestions for
//     partial queries
//   - get_title: the chapter and section outline of a single title
//   - list_titles: every title present in the corpus
//   - get_status: corpus and ingest-tracking statistics
//
// # Protocol Discipline
//
// Stdout carries MCP protocol messages exclusively. All diagnostic
// logging in this process goes to stderr.
//
// # Errors
//
// Handlers return *MCPError with JSON-RPC error codes. Invalid
// parameters are reported with ErrorCodeInvalidParams; a title number
// outside the corpus maps to ErrorCodeTitleNotFound. Search itself
// never errors: malformed filters and unreadable titles degrade to
// smaller result sets.
//
// # Basic Usage
//
//	store, _ := corpus.NewDirStore(dataDir, corpus.Options{})
//	engine := search.NewEngine(store, search.Options{})
//	srv := mcp.NewServer(store, engine, nil)
//	if err := srv.Serve(ctx); err != nil {
//		log.Fatal(err)
//	}
package mcp
