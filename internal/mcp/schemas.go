package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchTool returns the tool definition for search_us_code
func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_us_code",
		Description: "Search the United States Code with quoted phrases, free terms, and title/chapter/section filters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": `Search query; double-quote exact phrases, e.g. '"due process" hearing'`,
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one title number (1-54); non-numeric values are ignored",
				},
				"chapter": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one chapter number; non-numeric values are ignored",
				},
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one section number; non-numeric values are ignored",
				},
				"sort": map[string]interface{}{
					"type":        "string",
					"description": "Result ordering",
					"enum":        []string{"relevance", "title", "chapter", "section"},
					"default":     "relevance",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"query"},
		},
	}
}

// suggestTool returns the tool definition for get_search_suggestions
func suggestTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_search_suggestions",
		Description: "Autocomplete suggestions for a partial query, matched against title, chapter, and section headings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Partial query (minimum 2 characters)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of suggestions (1-25)",
					"default":     10,
					"minimum":     1,
					"maximum":     25,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getTitleTool returns the tool definition for get_title
func getTitleTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_title",
		Description: "Fetch one title of the United States Code as a chapter/section outline",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"number": map[string]interface{}{
					"type":        "integer",
					"description": "Title number (1-54; title 53 is reserved)",
					"minimum":     1,
					"maximum":     54,
				},
			},
			Required: []string{"number"},
		},
	}
}

// listTitlesTool returns the tool definition for list_titles
func listTitlesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_titles",
		Description: "List every loaded title of the United States Code",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report corpus and ingest-tracker statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
