package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
)

type listPricingPackagesTool struct{}

func NewListPricingPackagesTool() *listPricingPackagesTool {
	return &listPricingPackagesTool{}
}

func (l *listPricingPackagesTool) GetTool() mcp.Tool {
	return mcp.NewTool("list_pricing_packages",
		mcp.WithDescription("List the paid report packages with their price in USD. Checkout itself happens through the web API."),
	)
}

func (l *listPricingPackagesTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		response := map[string]any{
			"packages": models.PricingPackages(),
			"currency": "usd",
		}
		responseJSON, _ := json.MarshalIndent(response, "", "  ")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(responseJSON)),
			},
		}, nil
	}
}
