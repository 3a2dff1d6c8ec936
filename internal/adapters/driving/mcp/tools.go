package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResolveLanguageInput is the input schema for the resolve_language tool.
type ResolveLanguageInput struct {
	Names []string `json:"names" jsonschema:"language names as written in task headers, e.g. F-Sharp|F#"`
}

// ResolveLanguageOutput is the output schema for the resolve_language tool.
type ResolveLanguageOutput struct {
	Languages []LanguageOutput `json:"languages"`
}

// LanguageOutput describes where one language's solutions are stored.
type LanguageOutput struct {
	Raw       string `json:"raw"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Extension string `json:"extension"`
}

// ExtractPageInput is the input schema for the extract_page tool.
type ExtractPageInput struct {
	Category string `json:"category" jsonschema:"category directory to write into, e.g. Programming_Tasks"`
	PageID   uint64 `json:"page_id" jsonschema:"wiki page id of the task"`
}

// ExtractPageOutput is the output schema for the extract_page tool.
type ExtractPageOutput struct {
	Paths []string `json:"paths"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_language",
		Description: "Map language names to the directory and file extension used in the mirror",
	}, s.handleResolveLanguage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_page",
		Description: "Fetch a task page from the wiki and write its solutions into the mirror without committing",
	}, s.handleExtractPage)
}

func (s *Server) handleResolveLanguage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveLanguageInput,
) (*mcp.CallToolResult, ResolveLanguageOutput, error) {
	if len(input.Names) == 0 {
		return nil, ResolveLanguageOutput{}, errors.New("names is empty")
	}

	output := ResolveLanguageOutput{Languages: make([]LanguageOutput, 0, len(input.Names))}
	for _, raw := range input.Names {
		lang, err := s.ports.Mirror.ResolveLanguage(ctx, raw)
		if err != nil {
			return nil, ResolveLanguageOutput{}, err
		}
		output.Languages = append(output.Languages, LanguageOutput{
			Raw:       raw,
			Name:      lang.Name,
			Slug:      lang.Slug,
			Extension: lang.Extension,
		})
	}

	return nil, output, nil
}

func (s *Server) handleExtractPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractPageInput,
) (*mcp.CallToolResult, ExtractPageOutput, error) {
	if input.Category == "" || input.PageID == 0 {
		return nil, ExtractPageOutput{}, errors.New("category and page_id are required")
	}

	paths, err := s.ports.Mirror.ExtractPage(ctx, input.Category, input.PageID)
	if err != nil {
		return nil, ExtractPageOutput{}, err
	}

	return nil, ExtractPageOutput{Paths: paths, Count: len(paths)}, nil
}
