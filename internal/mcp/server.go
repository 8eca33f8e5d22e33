package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/tools"
)

// Version is reported to MCP clients during initialization
var Version = "dev"

type MCPServer struct {
	server *server.MCPServer
}

// NewMCPServer registers the tokenomics tools. serverPort is the API port used
// to build PDF report links.
func NewMCPServer(generationService services.GenerationService, tokenomicsService services.TokenomicsService, serverPort int) *MCPServer {
	mcpServer := &MCPServer{}
	mcpServer.InitializeTools(generationService, tokenomicsService, serverPort)
	return mcpServer
}

func (s *MCPServer) InitializeTools(generationService services.GenerationService, tokenomicsService services.TokenomicsService, serverPort int) {
	srv := server.NewMCPServer(
		"Tokenomics Studio MCP Server",
		Version,
		server.WithToolCapabilities(true),
	)

	srv.AddPrompt(mcp.NewPrompt("tokenomics-mcp-usage",
		mcp.WithPromptDescription("Instructions and guidance for using the tokenomics MCP tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (design, pricing, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("Tokenomics MCP Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(getToolInstructions(category)),
				),
			},
		), nil
	})

	// Design tools
	generateTool := tools.NewGenerateTokenomicsTool(generationService, serverPort)
	srv.AddTool(generateTool.GetTool(), generateTool.GetHandler())

	getTool := tools.NewGetTokenomicsTool(generationService, serverPort)
	srv.AddTool(getTool.GetTool(), getTool.GetHandler())

	listTool := tools.NewListTokenomicsTool(tokenomicsService)
	srv.AddTool(listTool.GetTool(), listTool.GetHandler())

	// Pricing tools
	pricingTool := tools.NewListPricingPackagesTool()
	srv.AddTool(pricingTool.GetTool(), pricingTool.GetHandler())

	s.server = srv
}

func getToolInstructions(category string) string {
	switch category {
	case "design":
		return `Tokenomics Design Tools:

1. generate_tokenomics - Design a tokenomics model for a project
   Usage: Provide project_type, target_audience, funding_goals and desired_utility.
   Optional fields tune the design: project_name, planned_raise_size, initial_supply,
   distribution_focus, launch_strategy, economic_model, additional_info

2. get_tokenomics - Get a stored design with its chart data
   Usage: Pass the project_id returned by generate_tokenomics

3. list_tokenomics - List recent designs, newest first
   Usage: Optional limit (1-100, default 20)`

	case "pricing":
		return `Pricing Tools:

1. list_pricing_packages - List the paid report packages
   Usage: Show the available packages before sending the user to checkout`

	case "all":
		return `Tokenomics MCP Tools Overview:

DESIGN (3 tools):
- generate_tokenomics: Design allocations, vesting, narrative and risks
- get_tokenomics: Fetch a stored design with chart data
- list_tokenomics: Browse recent designs

PRICING (1 tool):
- list_pricing_packages: Show the paid report packages

PDF reports are downloaded from GET /api/tokenomics/{id}/pdf on the web API.`

	default:
		return `Invalid category. Available categories: design, pricing, all`
	}
}

// StartStdioServer serves the tools over stdin/stdout until the input closes
func (s *MCPServer) StartStdioServer() error {
	return server.ServeStdio(s.server)
}

// GetServer returns the underlying mcp-go server
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.server
}
