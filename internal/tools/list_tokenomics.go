package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
)

type listTokenomicsTool struct {
	tokenomicsService services.TokenomicsService
}

type ListTokenomicsArguments struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type TokenomicsSummary struct {
	ID            string `json:"id"`
	ProjectName   string `json:"project_name"`
	ProjectType   string `json:"project_type"`
	TotalSupply   int64  `json:"total_supply"`
	Allocations   int    `json:"allocations"`
	PDFGenerated  bool   `json:"pdf_generated"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

func NewListTokenomicsTool(tokenomicsService services.TokenomicsService) *listTokenomicsTool {
	return &listTokenomicsTool{
		tokenomicsService: tokenomicsService,
	}
}

func (l *listTokenomicsTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("list_tokenomics",
		mcp.WithDescription("List the most recent tokenomics projects, newest first. Use get_tokenomics for the full design."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of projects to return (1-100). Defaults to 20."),
		),
	)

	return tool
}

func (l *listTokenomicsTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListTokenomicsArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		projects, err := l.tokenomicsService.ListProjects(args.Limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing projects: %v", err)), nil
		}

		summaries := make([]TokenomicsSummary, 0, len(projects))
		for _, project := range projects {
			summaries = append(summaries, TokenomicsSummary{
				ID:            project.ID,
				ProjectName:   project.ProjectName,
				ProjectType:   project.RequestData.ProjectType,
				TotalSupply:   project.TotalSupply,
				Allocations:   len(project.Allocations),
				PDFGenerated:  project.PDFGenerated,
				PaymentStatus: string(project.PaymentStatus),
				CreatedAt:     project.CreatedAt.Format(time.RFC3339),
			})
		}

		response := map[string]any{
			"projects": summaries,
			"total":    len(summaries),
		}
		responseJSON, _ := json.MarshalIndent(response, "", "  ")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(responseJSON)),
			},
		}, nil
	}
}
