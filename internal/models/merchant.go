package models

import "time"

// Merchant statuses
const (
	MerchantStatusActive        = "active"
	MerchantStatusSuspended     = "suspended"
	MerchantStatusPendingReview = "pending_review"
)

// Merchant tiers
const (
	TierStarter    = "starter"
	TierGrowth     = "growth"
	TierEnterprise = "enterprise"
)

// Merchant is a business processing payments on the platform. Balance and
// TotalProcessed are running aggregates maintained by the settlement
// pipeline; this service only reads them.
type Merchant struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	MerchantID     string    `gorm:"uniqueIndex;not null" json:"merchantId"`
	BusinessName   string    `gorm:"not null" json:"businessName"`
	Status         string    `gorm:"index;not null" json:"status"`
	Tier           string    `gorm:"index;not null" json:"tier"`
	Balance        float64   `gorm:"default:0" json:"balance"`
	TotalProcessed float64   `gorm:"default:0" json:"totalProcessed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
