package alert

import (
	"pulso/internal/models"
	"pulso/internal/utils/pagination"
)

// Signals carries metric inputs the evaluator cannot derive from the
// record store itself. Fraud scoring happens upstream; a nil FraudScore
// skips the fraud_suspected check.
type Signals struct {
	FraudScore *float64
	MerchantID string
}

type ListRequest struct {
	Severity   string
	Type       string
	IsResolved *bool
	Page       int
	Limit      int
}

type ListResult struct {
	Alerts          []models.Alert   `json:"alerts"`
	UnresolvedCount int64            `json:"unresolvedCount"`
	SeverityCounts  map[string]int64 `json:"severityCounts"`
	Pagination      pagination.Meta  `json:"pagination"`
}

// ThresholdUpdateRequest carries the editable threshold fields. Nil
// means "leave unchanged".
type ThresholdUpdateRequest struct {
	Threshold   *float64 `json:"threshold"`
	IsEnabled   *bool    `json:"isEnabled"`
	Description *string  `json:"description"`
}
