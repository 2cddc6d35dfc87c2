package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for cartvoice resources.
	uriScheme = "cartvoice://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "Stored product catalog",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cart",
		Name:        "cart",
		Description: "Current cart lines, merged by product name",
		MIMEType:    "application/json",
	}, s.handleCartResource)
}

// handleCatalogResource returns the stored catalog entries.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	entries, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	type entryInfo struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Category string   `json:"category,omitempty"`
		Brand    string   `json:"brand,omitempty"`
		Tags     []string `json:"tags,omitempty"`
		Price    float64  `json:"price"`
	}

	infos := make([]entryInfo, len(entries))
	for i, e := range entries {
		infos[i] = entryInfo{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category,
			Brand:    e.Brand,
			Tags:     e.Tags,
			Price:    e.Price,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleCartResource returns the merged cart.
func (s *Server) handleCartResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cart == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	items, err := s.ports.Cart.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cart: %w", err)
	}

	lines := make([]CartLineOutput, len(items))
	for i, it := range items {
		lines[i] = CartLineOutput{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}

	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling cart: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
