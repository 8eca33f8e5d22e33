package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is returned when a TokenomicsRequest fails validation
var ErrInvalidRequest = errors.New("invalid tokenomics request")

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExpired PaymentStatus = "expired"
)

// Request defaults used when the optional fields are left empty
const (
	DefaultInitialSupply     = "100M"
	DefaultDistributionFocus = "balanced"
	DefaultLaunchStrategy    = "gradual"
	DefaultEconomicModel     = "standard"
)

// TokenomicsRequest describes the project a design is generated for.
// Supply and raise size are display strings; nothing here is parsed as a number.
type TokenomicsRequest struct {
	ProjectType       string   `json:"project_type" validate:"required"`    // NFT, DeFi, GameFi, DAO, ...
	TargetAudience    string   `json:"target_audience" validate:"required"` // retail, institutional, both
	FundingGoals      string   `json:"funding_goals" validate:"required"`
	PlannedRaiseSize  string   `json:"planned_raise_size,omitempty"`
	DesiredUtility    []string `json:"desired_utility" validate:"required,min=1,dive,required"`
	ProjectName       string   `json:"project_name,omitempty"`
	AdditionalInfo    string   `json:"additional_info,omitempty"`
	InitialSupply     string   `json:"initial_supply,omitempty"`
	DistributionFocus string   `json:"distribution_focus,omitempty"`
	LaunchStrategy    string   `json:"launch_strategy,omitempty"`
	EconomicModel     string   `json:"economic_model,omitempty"`
}

// WithDefaults returns a copy of the request with every optional field that has
// a documented default filled in.
func (r TokenomicsRequest) WithDefaults() TokenomicsRequest {
	if r.InitialSupply == "" {
		r.InitialSupply = DefaultInitialSupply
	}
	if r.DistributionFocus == "" {
		r.DistributionFocus = DefaultDistributionFocus
	}
	if r.LaunchStrategy == "" {
		r.LaunchStrategy = DefaultLaunchStrategy
	}
	if r.EconomicModel == "" {
		r.EconomicModel = DefaultEconomicModel
	}
	r.DesiredUtility = append([]string(nil), r.DesiredUtility...)
	return r
}

// DisplayName is the project name, or "<type> Project" when none was given
func (r TokenomicsRequest) DisplayName() string {
	if r.ProjectName != "" {
		return r.ProjectName
	}
	return fmt.Sprintf("%s Project", r.ProjectType)
}

// Validate checks the struct tags of the request
func (r TokenomicsRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// TokenAllocation is one row of the distribution table
type TokenAllocation struct {
	Category           string  `json:"category"`
	Percentage         float64 `json:"percentage"`
	Tokens             int64   `json:"tokens"`
	Description        string  `json:"description"`
	VestingSchedule    string  `json:"vesting_schedule"`
	CliffMonths        int     `json:"cliff_months"`
	LinearUnlockMonths int     `json:"linear_unlock_months"`
}

// TokenomicsProject is a complete tokenomics design. After creation only
// PDFGenerated and PaymentStatus change.
type TokenomicsProject struct {
	ID                 string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectName        string            `gorm:"not null" json:"project_name"`
	RequestData        TokenomicsRequest `gorm:"serializer:json;type:text" json:"request_data"`
	Allocations        []TokenAllocation `gorm:"serializer:json;type:text" json:"allocations"`
	TotalSupply        int64             `gorm:"not null" json:"total_supply"`
	Narrative          string            `gorm:"type:text;not null" json:"narrative"`
	Risks              []string          `gorm:"serializer:json;type:text" json:"risks"`
	ComparableProjects []string          `gorm:"serializer:json;type:text" json:"comparable_projects"`
	CreatedAt          time.Time         `json:"created_at"`
	PDFGenerated       bool              `gorm:"column:pdf_generated;default:false" json:"pdf_generated"`
	PaymentStatus      PaymentStatus     `gorm:"default:pending" json:"payment_status"` // pending, paid, expired
}

// ChartEntry is the presentation summary of one allocation
type ChartEntry struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Tokens int64   `json:"tokens"`
	Color  string  `json:"color"`
}
