package tokenomics

import "github.com/rxtech-lab/tokenomics-studio/internal/models"

// ChartPalette is cycled over allocations by position
var ChartPalette = [7]string{
	"#DC1FFF",
	"#00FFA3",
	"#FF6B35",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
}

// ProjectChart returns one chart entry per allocation, in allocation order
func ProjectChart(project *models.TokenomicsProject) []models.ChartEntry {
	entries := make([]models.ChartEntry, 0, len(project.Allocations))
	for i, allocation := range project.Allocations {
		entries = append(entries, models.ChartEntry{
			Name:   allocation.Category,
			Value:  allocation.Percentage,
			Tokens: allocation.Tokens,
			Color:  ChartPalette[i%len(ChartPalette)],
		})
	}
	return entries
}
