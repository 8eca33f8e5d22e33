package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rxtech-lab/tokenomics-studio/internal/api"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type StdioServerTestSuite struct {
	suite.Suite
	apiServer *api.APIServer
	port      int
}

func (suite *StdioServerTestSuite) SetupSuite() {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Server:   config.ServerConfig{CORSOrigins: "*"},
	}

	// Configure and start server on a random port
	apiServer, port, err := configureAndStartServer(cfg, zap.NewNop(), 0)
	suite.Require().NoError(err)
	suite.Require().NotZero(port, "Port should not be 0")

	suite.apiServer = apiServer
	suite.port = port

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)
}

func (suite *StdioServerTestSuite) TearDownSuite() {
	if suite.apiServer != nil {
		suite.apiServer.Shutdown()
	}
}

func (suite *StdioServerTestSuite) getBaseURL() string {
	return fmt.Sprintf("http://localhost:%d", suite.port)
}

func (suite *StdioServerTestSuite) TestRoutesAccessible() {
	client := &http.Client{Timeout: 10 * time.Second}

	testRoutes := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/payments/packages", http.StatusOK},
		{"/api/tokenomics", http.StatusOK},
		{"/api/tokenomics/missing", http.StatusNotFound},
	}

	for _, testRoute := range testRoutes {
		resp, err := client.Get(suite.getBaseURL() + testRoute.path)
		suite.Require().NoError(err, testRoute.path)
		suite.Equal(testRoute.status, resp.StatusCode, testRoute.path)
		_ = resp.Body.Close()
	}
}

func (suite *StdioServerTestSuite) TestNoMCPEndpointsInStdioMode() {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(suite.getBaseURL()+"/mcp", "application/json", nil)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *StdioServerTestSuite) TestMCPServerAttached() {
	suite.NotNil(suite.apiServer.GetMCPServer())
	suite.NotNil(suite.apiServer.GetMCPServer().GetServer())
}

func TestStdioServerTestSuite(t *testing.T) {
	suite.Run(t, new(StdioServerTestSuite))
}
