package tokenomics

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
)

// SumTolerance is the accepted drift, in percentage points, of the allocation
// percentage sum from 100 and of the token sum from the total supply.
const SumTolerance = 0.5

const codeFence = "```"

var requiredKeys = []string{"total_supply", "allocations", "narrative", "risks", "comparable_projects"}

var allocationFields = []string{
	"category",
	"percentage",
	"tokens",
	"description",
	"vesting_schedule",
	"cliff_months",
	"linear_unlock_months",
}

// StripCodeFence removes a surrounding markdown code fence, with or without a
// language tag. Unfenced text is only trimmed, so the function is idempotent.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, codeFence) {
		return s
	}
	s = strings.TrimPrefix(s, codeFence)
	s = strings.TrimLeftFunc(s, isFenceTagRune)
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, codeFence)
	return strings.TrimSpace(s)
}

func isFenceTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+'
}

// ParseResponse decodes a model answer into a design for the request. The
// returned project has no identity, timestamp or status fields yet. Every
// failure wraps ErrMalformedResponse.
func ParseResponse(raw string, request models.TokenomicsRequest) (*models.TokenomicsProject, error) {
	decoder := json.NewDecoder(strings.NewReader(StripCodeFence(raw)))
	decoder.UseNumber()

	var doc map[string]any
	if err := decoder.Decode(&doc); err != nil {
		return nil, malformed("failed to decode response: %v", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, malformed("unexpected data after the JSON object")
	}

	for _, key := range requiredKeys {
		if _, ok := doc[key]; !ok {
			return nil, malformed("missing required key %q", key)
		}
	}

	totalSupply, err := asInt(doc["total_supply"])
	if err != nil {
		return nil, malformed("total_supply: %v", err)
	}
	if totalSupply <= 0 {
		return nil, malformed("total_supply must be positive, got %d", totalSupply)
	}

	allocations, err := parseAllocations(doc["allocations"])
	if err != nil {
		return nil, err
	}

	narrative, ok := doc["narrative"].(string)
	if !ok || strings.TrimSpace(narrative) == "" {
		return nil, malformed("narrative must be a non-empty string")
	}

	risks, err := asStringList(doc["risks"])
	if err != nil {
		return nil, malformed("risks: %v", err)
	}
	if len(risks) == 0 {
		return nil, malformed("risks must not be empty")
	}

	comparables, err := asStringList(doc["comparable_projects"])
	if err != nil {
		return nil, malformed("comparable_projects: %v", err)
	}

	req := request.WithDefaults()
	return &models.TokenomicsProject{
		ProjectName:        req.DisplayName(),
		RequestData:        req,
		Allocations:        allocations,
		TotalSupply:        totalSupply,
		Narrative:          narrative,
		Risks:              risks,
		ComparableProjects: comparables,
	}, nil
}

func parseAllocations(value any) ([]models.TokenAllocation, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, malformed("allocations must be a list")
	}
	if len(items) == 0 {
		return nil, malformed("allocations must not be empty")
	}

	allocations := make([]models.TokenAllocation, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, malformed("allocation %d is not an object", i)
		}
		allocation, err := parseAllocation(entry)
		if err != nil {
			return nil, malformed("allocation %d: %v", i, err)
		}
		if seen[allocation.Category] {
			return nil, malformed("allocation %d: duplicate category %q", i, allocation.Category)
		}
		seen[allocation.Category] = true
		allocations = append(allocations, allocation)
	}
	return allocations, nil
}

func parseAllocation(entry map[string]any) (models.TokenAllocation, error) {
	var allocation models.TokenAllocation
	for _, field := range allocationFields {
		if _, ok := entry[field]; !ok {
			return allocation, fmt.Errorf("missing field %q", field)
		}
	}

	category, ok := entry["category"].(string)
	if !ok || strings.TrimSpace(category) == "" {
		return allocation, fmt.Errorf("category must be a non-empty string")
	}

	percentage, err := asFloat(entry["percentage"])
	if err != nil {
		return allocation, fmt.Errorf("percentage: %w", err)
	}
	if percentage < 0 || percentage > 100 {
		return allocation, fmt.Errorf("percentage %v is outside 0-100", percentage)
	}

	tokens, err := asNonNegativeInt(entry["tokens"])
	if err != nil {
		return allocation, fmt.Errorf("tokens: %w", err)
	}

	description, ok := entry["description"].(string)
	if !ok {
		return allocation, fmt.Errorf("description must be a string")
	}
	vesting, ok := entry["vesting_schedule"].(string)
	if !ok {
		return allocation, fmt.Errorf("vesting_schedule must be a string")
	}

	cliff, err := asNonNegativeInt(entry["cliff_months"])
	if err != nil {
		return allocation, fmt.Errorf("cliff_months: %w", err)
	}
	unlock, err := asNonNegativeInt(entry["linear_unlock_months"])
	if err != nil {
		return allocation, fmt.Errorf("linear_unlock_months: %w", err)
	}
	if cliff > math.MaxInt32 || unlock > math.MaxInt32 {
		return allocation, fmt.Errorf("month values out of range")
	}

	return models.TokenAllocation{
		Category:           strings.TrimSpace(category),
		Percentage:         percentage,
		Tokens:             tokens,
		Description:        description,
		VestingSchedule:    vesting,
		CliffMonths:        int(cliff),
		LinearUnlockMonths: int(unlock),
	}, nil
}

// CheckAllocationSums reports how far a design drifts from the sum invariants.
// An empty result means both sums are within SumTolerance.
func CheckAllocationSums(project *models.TokenomicsProject) []string {
	var warnings []string
	var percentSum float64
	var tokenSum int64
	for _, allocation := range project.Allocations {
		percentSum += allocation.Percentage
		tokenSum += allocation.Tokens
	}

	if math.Abs(percentSum-100) > SumTolerance {
		warnings = append(warnings, fmt.Sprintf("allocation percentages sum to %.2f, expected 100", percentSum))
	}
	if project.TotalSupply > 0 {
		drift := math.Abs(float64(tokenSum-project.TotalSupply)) / float64(project.TotalSupply) * 100
		if drift > SumTolerance {
			warnings = append(warnings, fmt.Sprintf("allocation tokens sum to %d, expected %d", tokenSum, project.TotalSupply))
		}
	}
	return warnings
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

// asFloat accepts JSON numbers and numeric strings
func asFloat(value any) (float64, error) {
	var f float64
	var err error
	switch v := value.(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
	if err != nil {
		return 0, fmt.Errorf("not a number: %v", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", value)
	}
	return f, nil
}

// asInt accepts integral JSON numbers (including 12.0) and integer strings
func asInt(value any) (int64, error) {
	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer: %v", value)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", value)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("integer out of range: %v", value)
	}
	return int64(f), nil
}

func asNonNegativeInt(value any) (int64, error) {
	n, err := asInt(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}

func asStringList(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings")
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d is not a string", i)
		}
		out = append(out, s)
	}
	return out, nil
}
