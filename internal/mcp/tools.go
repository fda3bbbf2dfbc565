package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/MKLambda/uscsearch/internal/corpus"
	"github.com/MKLambda/uscsearch/internal/search"
	"github.com/MKLambda/uscsearch/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeTitleNotFound = -32001 // Requested title is not in the corpus
	ErrorCodeEmptyQuery    = -32004 // Query parameter is empty
)

// handleSearch handles the search_us_code tool invocation
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 20)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	// Non-numeric filter values are deliberately permissive: they parse
	// to "filter absent" rather than erroring.
	req := search.Request{
		Query: query,
		Filters: search.ParseFilters(
			getStringDefault(args, "title", ""),
			getStringDefault(args, "chapter", ""),
			getStringDefault(args, "section", ""),
		),
		Sort:  search.ParseSortKey(getStringDefault(args, "sort", "relevance")),
		Limit: limit,
	}

	resp := s.engine.Search(ctx, req)

	results := make([]map[string]interface{}, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, formatResult(&resp.Results[i]))
	}

	response := map[string]interface{}{
		"query":   query,
		"sort":    string(req.Sort),
		"results": results,
		"stats": map[string]interface{}{
			"total_results":   resp.Stats.TotalResults,
			"title_matches":   resp.Stats.TitleMatches,
			"section_matches": resp.Stats.SectionMatches,
			"titles_found":    resp.Stats.TitlesFound,
			"chapters_found":  resp.Stats.ChaptersFound,
		},
		"duration_ms": resp.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSuggest handles the get_search_suggestions tool invocation
func (s *Server) handleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing",
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 25 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 25", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	// Too-short input fails closed with an empty sequence.
	suggestions := s.engine.Suggest(ctx, query, limit)

	formatted := make([]map[string]interface{}, 0, len(suggestions))
	for _, sg := range suggestions {
		entry := map[string]interface{}{
			"type": string(sg.Type),
			"text": sg.Text,
		}
		if sg.TitleNumber != 0 {
			entry["title"] = sg.TitleNumber
		}
		if sg.ChapterNumber != "" {
			entry["chapter"] = sg.ChapterNumber
		}
		if sg.SectionNumber != "" {
			entry["section"] = sg.SectionNumber
		}
		formatted = append(formatted, entry)
	}

	response := map[string]interface{}{
		"query":       query,
		"suggestions": formatted,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetTitle handles the get_title tool invocation
func (s *Server) handleGetTitle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	number := getIntDefault(args, "number", 0)
	if !types.ValidTitleNumber(number) {
		return nil, newMCPError(ErrorCodeInvalidParams, "number must identify a publishable title", map[string]interface{}{
			"param": "number",
			"value": number,
		})
	}

	title, err := s.store.GetTitle(ctx, number)
	if err == corpus.ErrNotFound {
		return nil, newMCPError(ErrorCodeTitleNotFound, fmt.Sprintf("title %d is not in the corpus", number), nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load title", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chapters := make([]map[string]interface{}, 0, len(title.Chapters))
	for ci := range title.Chapters {
		chapter := &title.Chapters[ci]
		sections := make([]map[string]interface{}, 0, len(chapter.Sections))
		for si := range chapter.Sections {
			section := &chapter.Sections[si]
			sections = append(sections, map[string]interface{}{
				"number":  section.Number,
				"heading": section.Heading,
			})
		}
		chapters = append(chapters, map[string]interface{}{
			"number":   chapter.Number,
			"heading":  chapter.Heading,
			"sections": sections,
		})
	}

	response := map[string]interface{}{
		"number":   title.Number,
		"name":     title.Name,
		"chapters": chapters,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListTitles handles the list_titles tool invocation
func (s *Server) handleListTitles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.store.ListTitles(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list titles", map[string]interface{}{
			"error": err.Error(),
		})
	}

	titles := make([]map[string]interface{}, 0, len(summaries))
	for _, t := range summaries {
		titles = append(titles, map[string]interface{}{
			"number": t.Number,
			"name":   t.Name,
		})
	}

	response := map[string]interface{}{
		"count":  len(titles),
		"titles": titles,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpusStats, err := s.store.Stats()
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to read corpus stats", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"corpus": map[string]interface{}{
			"title_files":   corpusStats.TitleFiles,
			"cached_titles": corpusStats.CachedTitles,
		},
	}

	if s.tracker != nil {
		trackerStats, err := s.tracker.GetStats(ctx)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to read tracker stats", map[string]interface{}{
				"error": err.Error(),
			})
		}
		ingest := map[string]interface{}{
			"titles_tracked": trackerStats.TitlesTracked,
			"loads_recorded": trackerStats.LoadsRecorded,
		}
		if !trackerStats.LastLoadAt.IsZero() {
			ingest["last_load_at"] = trackerStats.LastLoadAt.Format("2006-01-02T15:04:05Z07:00")
		}
		response["ingest"] = ingest
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// formatResult renders one search result for the wire.
func formatResult(r *types.SearchResult) map[string]interface{} {
	entry := map[string]interface{}{
		"rank":          r.Rank,
		"score":         r.Score,
		"title":         r.TitleNumber,
		"title_name":    r.TitleName,
		"matched_terms": r.MatchedTerms,
		"snippet":       r.Snippet,
		"highlighted":   r.HighlightedSnippet,
	}
	if r.IsTitleMatch {
		entry["match_type"] = "title"
	} else {
		entry["match_type"] = "section"
		entry["chapter"] = r.ChapterNumber
		entry["chapter_heading"] = r.ChapterHeading
		entry["section"] = r.SectionNumber
		entry["section_heading"] = r.SectionHeading
	}
	return entry
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
