package models

import (
	"errors"
	"fmt"
	"time"
)

// Withdrawal statuses
const (
	WdStatusPending    = "pending"
	WdStatusProcessing = "processing"
	WdStatusCompleted  = "completed"
	WdStatusFailed     = "failed"
	WdStatusCancelled  = "cancelled"
)

// Withdrawal is a merchant payout request. BankAccount carries only the
// masked form (last 4 digits), never the full account number.
type Withdrawal struct {
	ID           uint       `gorm:"primarykey" json:"-"`
	WithdrawalID string     `gorm:"uniqueIndex;not null" json:"withdrawalId"`
	MerchantID   string     `gorm:"index;not null" json:"merchantId"`
	MerchantName string     `gorm:"not null" json:"merchantName"`
	Amount       float64    `gorm:"not null" json:"amount"`
	Currency     string     `gorm:"default:'MXN'" json:"currency"`
	Status       string     `gorm:"index;not null" json:"status"`
	BankAccount  string     `gorm:"not null" json:"bankAccount"`
	BankName     string     `gorm:"not null" json:"bankName"`
	RequestedAt  time.Time  `gorm:"index;not null" json:"requestedAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ProcessedBy  string     `json:"processedBy,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func validWithdrawalStatus(s string) bool {
	switch s {
	case WdStatusPending, WdStatusProcessing, WdStatusCompleted,
		WdStatusFailed, WdStatusCancelled:
		return true
	}
	return false
}

// ValidWithdrawalStatus reports whether s is a known withdrawal status.
func ValidWithdrawalStatus(s string) bool { return validWithdrawalStatus(s) }

// Validate checks the lifecycle invariants: timestamps are monotonic and
// processedAt appears only once the request has left pending.
func (w *Withdrawal) Validate() error {
	if w.WithdrawalID == "" {
		return errors.New("withdrawal id is required")
	}
	if w.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !validWithdrawalStatus(w.Status) {
		return fmt.Errorf("unknown withdrawal status %q", w.Status)
	}
	if w.Status == WdStatusPending && w.ProcessedAt != nil {
		return errors.New("processedAt must not be set while pending")
	}
	if w.ProcessedAt != nil && w.ProcessedAt.Before(w.RequestedAt) {
		return errors.New("processedAt precedes requestedAt")
	}
	if w.CompletedAt != nil {
		if w.ProcessedAt == nil {
			return errors.New("completedAt requires processedAt")
		}
		if w.CompletedAt.Before(*w.ProcessedAt) {
			return errors.New("completedAt precedes processedAt")
		}
	}
	return nil
}
