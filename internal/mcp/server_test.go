package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMCPServer(t *testing.T) *MCPServer {
	t.Helper()

	db, err := services.NewSqliteDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokenomicsService := services.NewTokenomicsService(db.GetDB())
	generationService := services.NewGenerationService(tokenomics.NewGenerator(nil), tokenomicsService)
	return NewMCPServer(generationService, tokenomicsService, 8080)
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	mcpServer := newTestMCPServer(t)
	require.NotNil(t, mcpServer.GetServer())

	response := mcpServer.GetServer().HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	body, err := json.Marshal(response)
	require.NoError(t, err)

	for _, name := range []string{"generate_tokenomics", "get_tokenomics", "list_tokenomics", "list_pricing_packages"} {
		assert.Contains(t, string(body), `"name":"`+name+`"`)
	}
}

func TestGetToolInstructions(t *testing.T) {
	assert.Contains(t, getToolInstructions("design"), "generate_tokenomics")
	assert.Contains(t, getToolInstructions("pricing"), "list_pricing_packages")
	assert.Contains(t, getToolInstructions("all"), "/api/tokenomics/{id}/pdf")
	assert.Contains(t, getToolInstructions("deploy"), "Invalid category")
}
