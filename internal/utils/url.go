package utils

import (
	"fmt"
	"net/url"
	"os"
)

// GetReportUrl returns the download link for a project's PDF report
func GetReportUrl(serverPort int, projectID string) (string, error) {

	// Override baseUrl if BASE_URL env var is set
	if os.Getenv("BASE_URL") != "" {
		baseUrl := os.Getenv("BASE_URL")
		parsedUrl, err := url.Parse(baseUrl)
		if err != nil {
			return "", fmt.Errorf("invalid BASE_URL env var: %w", err)
		}
		parsedUrl.Path = fmt.Sprintf("/api/tokenomics/%s/pdf", projectID)
		return parsedUrl.String(), nil
	}

	url := fmt.Sprintf("http://localhost:%d/api/tokenomics/%s/pdf", serverPort, projectID)
	return url, nil
}
