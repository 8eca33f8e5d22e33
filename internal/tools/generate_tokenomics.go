package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/utils"
)

type generateTokenomicsTool struct {
	generationService services.GenerationService
	serverPort        int
}

func NewGenerateTokenomicsTool(generationService services.GenerationService, serverPort int) *generateTokenomicsTool {
	return &generateTokenomicsTool{
		generationService: generationService,
		serverPort:        serverPort,
	}
}

func (g *generateTokenomicsTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("generate_tokenomics",
		mcp.WithDescription("Design a complete tokenomics model for a crypto project. Returns the stored project with token allocations, vesting schedules, narrative, risks, comparable projects and chart data. If the AI model is unavailable a balanced five-category template is returned instead."),
		mcp.WithString("project_type",
			mcp.Required(),
			mcp.Description("Kind of project, for example NFT, DeFi, GameFi or DAO"),
		),
		mcp.WithString("target_audience",
			mcp.Required(),
			mcp.Description("Who the token is for: retail, institutional or both"),
		),
		mcp.WithString("funding_goals",
			mcp.Required(),
			mcp.Description("What the raise is meant to fund"),
		),
		mcp.WithArray("desired_utility",
			mcp.Required(),
			mcp.Description("Utility requirements of the token (e.g., [\"staking\", \"governance\"])"),
			mcp.Items(map[string]any{
				"type": "string",
			}),
		),
		mcp.WithString("project_name",
			mcp.Description("Project name. Defaults to \"<project_type> Project\"."),
		),
		mcp.WithString("planned_raise_size",
			mcp.Description("Planned raise, free text (e.g., \"$5M\"). Optional."),
		),
		mcp.WithString("additional_info",
			mcp.Description("Anything else the design should take into account. Optional."),
		),
		mcp.WithString("initial_supply",
			mcp.Description("Initial supply as display text (e.g., \"100M\"). Defaults to 100M."),
		),
		mcp.WithString("distribution_focus",
			mcp.Description("Distribution preference. Defaults to balanced."),
		),
		mcp.WithString("launch_strategy",
			mcp.Description("Launch strategy. Defaults to gradual."),
		),
		mcp.WithString("economic_model",
			mcp.Description("Economic model, for example deflationary. Defaults to standard."),
		),
	)

	return tool
}

func (g *generateTokenomicsTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args models.TokenomicsRequest
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		result, err := g.generationService.GenerateProject(ctx, args)
		if errors.Is(err, models.ErrInvalidRequest) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error generating tokenomics: %v", err)), nil
		}

		resultJSON, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error encoding result: %v", err)), nil
		}

		reportUrl, err := utils.GetReportUrl(g.serverPort, result.Project.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error building report url: %v", err)), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Tokenomics project %s created with %d allocations", result.Project.ID, len(result.Project.Allocations))),
				mcp.NewTextContent(fmt.Sprintf("Download the PDF report at: %s", reportUrl)),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}
}
