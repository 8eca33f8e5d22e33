package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction records one checkout session
type PaymentTransaction struct {
	ID            string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SessionID     string          `gorm:"uniqueIndex;not null" json:"session_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string          `gorm:"not null;default:usd" json:"currency"`
	PaymentStatus PaymentStatus   `gorm:"default:pending" json:"payment_status"`
	ProjectID     *string         `gorm:"index;type:varchar(64)" json:"project_id,omitempty"`
	Metadata      Metadata        `gorm:"type:text" json:"metadata"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PricingPackageID string

const (
	PricingPackageBasic   PricingPackageID = "basic"
	PricingPackagePro     PricingPackageID = "pro"
	PricingPackagePremium PricingPackageID = "premium"
)

// PricingPackage is one of the fixed checkout tiers
type PricingPackage struct {
	ID          PricingPackageID `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
}

var pricingPackages = []PricingPackage{
	{
		ID:          PricingPackageBasic,
		Amount:      decimal.NewFromInt(79),
		Name:        "Basic Tokenomics",
		Description: "Standard tokenomics design with PDF and charts",
	},
	{
		ID:          PricingPackagePro,
		Amount:      decimal.NewFromInt(199),
		Name:        "Pro Tokenomics",
		Description: "Advanced tokenomics with multiple iterations and comparisons",
	},
	{
		ID:          PricingPackagePremium,
		Amount:      decimal.NewFromInt(499),
		Name:        "Premium Package",
		Description: "Complete tokenomics suite with investor deck",
	},
}

// PricingPackages returns the checkout tiers in display order
func PricingPackages() []PricingPackage {
	return append([]PricingPackage(nil), pricingPackages...)
}

// LookupPricingPackage finds a tier by id
func LookupPricingPackage(id string) (PricingPackage, bool) {
	for _, p := range pricingPackages {
		if string(p.ID) == id {
			return p, true
		}
	}
	return PricingPackage{}, false
}
