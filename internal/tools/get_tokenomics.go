package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/utils"
)

type getTokenomicsTool struct {
	generationService services.GenerationService
	serverPort        int
}

type GetTokenomicsArguments struct {
	ProjectID string `json:"project_id" validate:"required"`
}

func NewGetTokenomicsTool(generationService services.GenerationService, serverPort int) *getTokenomicsTool {
	return &getTokenomicsTool{
		generationService: generationService,
		serverPort:        serverPort,
	}
}

func (g *getTokenomicsTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("get_tokenomics",
		mcp.WithDescription("Get a stored tokenomics project by id together with its chart data"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the tokenomics project, as returned by generate_tokenomics"),
		),
	)

	return tool
}

func (g *getTokenomicsTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetTokenomicsArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		result, err := g.generationService.GetProjectWithChart(args.ProjectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Project not found: %v", err)), nil
		}

		reportUrl, err := utils.GetReportUrl(g.serverPort, result.Project.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error building report url: %v", err)), nil
		}

		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(resultJSON)),
				mcp.NewTextContent(fmt.Sprintf("PDF report: %s", reportUrl)),
			},
		}, nil
	}
}
