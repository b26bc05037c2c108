package models

import "time"

// Alert types
const (
	AlertSuccessRate     = "success_rate"
	AlertHighChargebacks = "high_chargebacks"
	AlertUnusualVolume   = "unusual_volume"
	AlertSystemLatency   = "system_latency"
	AlertFraudSuspected  = "fraud_suspected"
)

// Alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ValidAlertType reports whether t is a known alert type.
func ValidAlertType(t string) bool {
	switch t {
	case AlertSuccessRate, AlertHighChargebacks, AlertUnusualVolume,
		AlertSystemLatency, AlertFraudSuspected:
		return true
	}
	return false
}

// ValidAlertSeverity reports whether s is a known severity.
func ValidAlertSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Alert is a threshold breach recorded by the evaluator. MerchantID is
// empty for platform-wide alerts. Read/unread is orthogonal to
// resolved/unresolved; resolution is terminal.
type Alert struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Type         string     `gorm:"index;not null" json:"type"`
	Severity     string     `gorm:"index;not null" json:"severity"`
	Title        string     `gorm:"not null" json:"title"`
	Message      string     `gorm:"not null" json:"message"`
	Metric       string     `gorm:"not null" json:"metric"`
	Threshold    float64    `gorm:"not null" json:"threshold"`
	CurrentValue float64    `gorm:"not null" json:"currentValue"`
	MerchantID   string     `gorm:"index;default:''" json:"merchantId,omitempty"`
	IsRead       bool       `gorm:"index;default:false" json:"isRead"`
	IsResolved   bool       `gorm:"index;default:false" json:"isResolved"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AlertThreshold is the operator-editable configuration for one alert
// type. One row per type.
type AlertThreshold struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	Type        string    `gorm:"uniqueIndex;not null" json:"type"`
	Threshold   float64   `gorm:"not null" json:"threshold"`
	IsEnabled   bool      `gorm:"default:true" json:"isEnabled"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultAlertThresholds returns the seed configuration, one row per type.
func DefaultAlertThresholds() []AlertThreshold {
	return []AlertThreshold{
		{Type: AlertSuccessRate, Threshold: 95, IsEnabled: true, Description: "Alert when success rate drops below threshold percentage"},
		{Type: AlertHighChargebacks, Threshold: 1, IsEnabled: true, Description: "Alert when chargeback rate exceeds threshold percentage"},
		{Type: AlertUnusualVolume, Threshold: 50, IsEnabled: true, Description: "Alert when volume changes by more than threshold percentage from average"},
		{Type: AlertSystemLatency, Threshold: 3000, IsEnabled: true, Description: "Alert when average processing time exceeds threshold milliseconds"},
		{Type: AlertFraudSuspected, Threshold: 80, IsEnabled: true, Description: "Alert when fraud score exceeds threshold"},
	}
}
