package tokenomics

import (
	"strings"
	"testing"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_UsesDefaultsForMissingFields(t *testing.T) {
	prompt := BuildPrompt(models.TokenomicsRequest{
		ProjectType:    "DeFi",
		TargetAudience: "retail",
		FundingGoals:   "seed round",
		DesiredUtility: []string{"staking", "governance"},
	})

	assert.Contains(t, prompt, "- Name: DeFi Project")
	assert.Contains(t, prompt, "- Planned Raise: Not specified")
	assert.Contains(t, prompt, "- Initial Supply: 100M")
	assert.Contains(t, prompt, "- Distribution Focus: balanced")
	assert.Contains(t, prompt, "- Launch Strategy: gradual")
	assert.Contains(t, prompt, "- Economic Model: standard")
	assert.Contains(t, prompt, "- Utility Requirements: staking, governance")
	assert.Contains(t, prompt, "- Additional Info: None")
}

func TestBuildPrompt_UsesRequestFieldsVerbatim(t *testing.T) {
	prompt := BuildPrompt(models.TokenomicsRequest{
		ProjectType:       "GameFi",
		TargetAudience:    "institutional",
		FundingGoals:      "Series A for studio expansion",
		PlannedRaiseSize:  "$12M",
		DesiredUtility:    []string{"marketplace currency"},
		ProjectName:       "Questline",
		AdditionalInfo:    "Cross-chain launch on two L2s",
		InitialSupply:     "1B",
		DistributionFocus: "community-heavy",
		LaunchStrategy:    "fair launch",
		EconomicModel:     "deflationary",
	})

	for _, want := range []string{
		"for a GameFi project",
		"- Name: Questline",
		"- Target Audience: institutional",
		"- Funding Goals: Series A for studio expansion",
		"- Planned Raise: $12M",
		"- Initial Supply: 1B",
		"- Utility Requirements: marketplace currency",
		"- Additional Info: Cross-chain launch on two L2s",
		"1. Reflects the community-heavy distribution preference",
		"2. Incorporates the deflationary economic model",
		"3. Aligns with the fair launch launch strategy",
		"4. Optimizes for the institutional target audience",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildPrompt_DescribesResponseSchema(t *testing.T) {
	prompt := BuildPrompt(models.TokenomicsRequest{ProjectType: "DAO", DesiredUtility: []string{"governance"}})

	for _, key := range append(append([]string{}, requiredKeys...), allocationFields...) {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
	assert.Contains(t, prompt, "6-8 allocation categories")
	assert.Contains(t, prompt, "at least 3 risks")
}

func TestBuildPrompt_IsDeterministic(t *testing.T) {
	req := models.TokenomicsRequest{ProjectType: "NFT", TargetAudience: "retail", DesiredUtility: []string{"access"}}
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))

	other := req
	other.EconomicModel = "inflationary"
	assert.NotEqual(t, BuildPrompt(req), BuildPrompt(other))
	assert.True(t, strings.HasPrefix(BuildPrompt(req), "Design comprehensive tokenomics for a NFT project"))
}
