package tokenomics

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
)

// SystemPrompt is sent as the system message with every generation request
const SystemPrompt = `You are an expert tokenomics consultant with deep knowledge of DeFi, NFTs, gaming tokens, and crypto economics.
Your task is to create comprehensive, investor-ready tokenomics designs based on project requirements.`

const responseSchema = `{
    "total_supply": <integer based on initial_supply>,
    "allocations": [
        {
            "category": "<category name>",
            "percentage": <float>,
            "tokens": <integer>,
            "description": "<detailed description>",
            "vesting_schedule": "<vesting description>",
            "cliff_months": <integer>,
            "linear_unlock_months": <integer>
        }
    ],
    "narrative": "<comprehensive narrative explaining the tokenomics design, utility, economic model, and how it addresses the specific parameters>",
    "risks": ["<risk 1>", "<risk 2>", "<risk 3>"],
    "comparable_projects": ["<project 1>", "<project 2>", "<project 3>"]
}`

// BuildPrompt renders the generation instruction for a request. Missing
// optional fields are replaced by their defaults.
func BuildPrompt(request models.TokenomicsRequest) string {
	req := request.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Design comprehensive tokenomics for a %s project with the following requirements:\n\n", req.ProjectType)

	b.WriteString("Project Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.DisplayName())
	fmt.Fprintf(&b, "- Type: %s\n", req.ProjectType)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "- Funding Goals: %s\n", req.FundingGoals)
	fmt.Fprintf(&b, "- Planned Raise: %s\n", orDefault(req.PlannedRaiseSize, "Not specified"))
	fmt.Fprintf(&b, "- Initial Supply: %s\n", req.InitialSupply)
	fmt.Fprintf(&b, "- Distribution Focus: %s\n", req.DistributionFocus)
	fmt.Fprintf(&b, "- Launch Strategy: %s\n", req.LaunchStrategy)
	fmt.Fprintf(&b, "- Economic Model: %s\n", req.EconomicModel)
	fmt.Fprintf(&b, "- Utility Requirements: %s\n", strings.Join(req.DesiredUtility, ", "))
	fmt.Fprintf(&b, "- Additional Info: %s\n\n", orDefault(req.AdditionalInfo, "None"))

	b.WriteString("Based on these parameters, create a sophisticated tokenomics design that:\n")
	fmt.Fprintf(&b, "1. Reflects the %s distribution preference\n", req.DistributionFocus)
	fmt.Fprintf(&b, "2. Incorporates the %s economic model\n", req.EconomicModel)
	fmt.Fprintf(&b, "3. Aligns with the %s launch strategy\n", req.LaunchStrategy)
	fmt.Fprintf(&b, "4. Optimizes for the %s target audience\n\n", req.TargetAudience)

	b.WriteString("Respond with a single JSON object in exactly the following format and nothing else:\n\n")
	b.WriteString(responseSchema)
	b.WriteString("\n\n")

	b.WriteString("Requirements:\n")
	b.WriteString("- Adjust allocation percentages based on distribution_focus (community-heavy = more community allocation, etc.)\n")
	b.WriteString("- Include economic model mechanisms (deflationary = token burn, inflationary = staking rewards, etc.)\n")
	b.WriteString("- Tailor launch strategy implications in vesting schedules\n")
	b.WriteString("- Design 6-8 allocation categories appropriate for the project type\n")
	b.WriteString("- Allocation percentages must sum to 100 and allocation tokens must sum to total_supply\n")
	b.WriteString("- Provide at least 3 risks and at least 3 comparable projects\n")
	b.WriteString("- Create a compelling narrative that explains how the parameters influence the design\n")
	b.WriteString("- Consider the specific project type and target audience in recommendations\n\n")

	b.WriteString("Focus on creating a professional, investor-ready tokenomics design that clearly reflects the chosen parameters.\n")
	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
