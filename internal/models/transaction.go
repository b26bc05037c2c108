package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Transaction statuses
const (
	TxStatusPending    = "pending"
	TxStatusProcessing = "processing"
	TxStatusCompleted  = "completed"
	TxStatusFailed     = "failed"
	TxStatusRefunded   = "refunded"
	TxStatusChargeback = "chargeback"
)

// Payment methods
const (
	MethodCard   = "card"
	MethodSPEI   = "spei"
	MethodOXXO   = "oxxo"
	MethodPayPal = "paypal"
	MethodCrypto = "crypto"
)

// Transaction is a single payment processed on behalf of a merchant.
// Rows are created by the payment pipeline and only the status and
// lifecycle timestamps change afterwards.
type Transaction struct {
	ID             uint       `gorm:"primarykey" json:"-"`
	TransactionID  string     `gorm:"uniqueIndex;not null" json:"transactionId"`
	MerchantID     string     `gorm:"index;not null" json:"merchantId"`
	MerchantName   string     `gorm:"not null" json:"merchantName"`
	Amount         float64    `gorm:"not null" json:"amount"`
	Currency       string     `gorm:"default:'MXN'" json:"currency"`
	Status         string     `gorm:"index;not null" json:"status"`
	PaymentMethod  string     `gorm:"index;not null" json:"paymentMethod"`
	CardBrand      string     `json:"cardBrand,omitempty"`
	ErrorCode      string     `json:"errorCode,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	ProcessingTime int        `gorm:"not null" json:"processingTime"`
	Fee            float64    `gorm:"not null" json:"fee"`
	NetAmount      float64    `gorm:"not null" json:"netAmount"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func validTransactionStatus(s string) bool {
	switch s {
	case TxStatusPending, TxStatusProcessing, TxStatusCompleted,
		TxStatusFailed, TxStatusRefunded, TxStatusChargeback:
		return true
	}
	return false
}

func validPaymentMethod(m string) bool {
	switch m {
	case MethodCard, MethodSPEI, MethodOXXO, MethodPayPal, MethodCrypto:
		return true
	}
	return false
}

// Validate checks the record-level invariants. A violation means the row
// is a data-integrity defect, not a recoverable input error.
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return errors.New("transaction id is required")
	}
	if t.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if t.ProcessingTime < 0 {
		return errors.New("processing time cannot be negative")
	}
	if !validTransactionStatus(t.Status) {
		return fmt.Errorf("unknown transaction status %q", t.Status)
	}
	if !validPaymentMethod(t.PaymentMethod) {
		return fmt.Errorf("unknown payment method %q", t.PaymentMethod)
	}
	if math.Abs(t.NetAmount-(t.Amount-t.Fee)) > 1e-9 {
		return fmt.Errorf("net amount %.2f does not equal amount minus fee %.2f", t.NetAmount, t.Amount-t.Fee)
	}
	if (t.CompletedAt != nil) != (t.Status == TxStatusCompleted) {
		return errors.New("completedAt must be set exactly when status is completed")
	}
	if t.ErrorCode != "" && t.Status != TxStatusFailed {
		return errors.New("errorCode is only valid on failed transactions")
	}
	return nil
}
