package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "rosetta://"

// statusInfo is the JSON form of the mirror status.
type statusInfo struct {
	LastChange string         `json:"last_change"`
	Categories []categoryInfo `json:"categories"`
}

type categoryInfo struct {
	Category    string `json:"category"`
	Initialized bool   `json:"initialized"`
	Tasks       int    `json:"tasks"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Mirrored categories, their task counts and the last processed change",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}",
		Name:        "category",
		Description: "State of a single mirrored category",
		MIMEType:    "application/json",
	}, s.handleCategoryResource)
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info, err := s.status(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(req.Params.URI, info)
}

func (s *Server) handleCategoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractCategory(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, err := s.status(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range info.Categories {
		if c.Category == name {
			return jsonResult(req.Params.URI, c)
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func (s *Server) status(ctx context.Context) (*statusInfo, error) {
	statuses, ts, err := s.ports.Mirror.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	info := &statusInfo{
		LastChange: ts,
		Categories: make([]categoryInfo, len(statuses)),
	}
	for i, st := range statuses {
		info.Categories[i] = categoryInfo{
			Category:    st.Category,
			Initialized: st.Initialized,
			Tasks:       st.Tasks,
		}
	}
	return info, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCategory extracts the category from a URI like rosetta://categories/{category}.
func extractCategory(uri string) string {
	const prefix = uriScheme + "categories/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
