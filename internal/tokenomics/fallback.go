package tokenomics

import (
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
)

// FallbackTotalSupply is the supply every fallback design is built on
const FallbackTotalSupply int64 = 100_000_000

const basisPoints = 10_000

type fallbackShare struct {
	category           string
	basisPoints        int64
	description        string
	vestingSchedule    string
	cliffMonths        int
	linearUnlockMonths int
}

// shares must add up to basisPoints
var fallbackShares = []fallbackShare{
	{"Team", 1500, "Core team allocation with long vesting", "4-year linear vesting with 12-month cliff", 12, 36},
	{"Investors", 2000, "Private and seed investor allocation", "2-year linear vesting with 6-month cliff", 6, 18},
	{"Community", 3000, "Community rewards and ecosystem growth", "5-year emission schedule", 0, 60},
	{"Treasury", 2500, "Treasury for development and partnerships", "On-demand unlocking via governance", 0, 0},
	{"Liquidity", 1000, "DEX liquidity and market making", "Immediate unlock for liquidity provision", 0, 0},
}

var (
	fallbackRisks       = []string{"Market volatility", "Regulatory uncertainty", "Adoption challenges"}
	fallbackComparables = []string{"Uniswap", "AAVE", "Compound"}
)

// Fallback builds the fixed five-category design for a request. Percentages
// sum to exactly 100 and tokens to exactly FallbackTotalSupply. Only the
// project name, narrative and request echo depend on the request.
func Fallback(request models.TokenomicsRequest) *models.TokenomicsProject {
	req := request.WithDefaults()

	allocations := make([]models.TokenAllocation, 0, len(fallbackShares))
	for _, share := range fallbackShares {
		allocations = append(allocations, models.TokenAllocation{
			Category:           share.category,
			Percentage:         float64(share.basisPoints) / 100,
			Tokens:             FallbackTotalSupply * share.basisPoints / basisPoints,
			Description:        share.description,
			VestingSchedule:    share.vestingSchedule,
			CliffMonths:        share.cliffMonths,
			LinearUnlockMonths: share.linearUnlockMonths,
		})
	}

	return &models.TokenomicsProject{
		ProjectName: req.DisplayName(),
		RequestData: req,
		Allocations: allocations,
		TotalSupply: FallbackTotalSupply,
		Narrative: fmt.Sprintf(
			"This %s project features a balanced tokenomics model designed for %s audience. "+
				"The distribution ensures proper incentive alignment between stakeholders while maintaining healthy token circulation.",
			req.ProjectType, req.TargetAudience),
		Risks:              append([]string(nil), fallbackRisks...),
		ComparableProjects: append([]string(nil), fallbackComparables...),
	}
}
