package repositories

import (
	"context"
	"time"

	"pulso/internal/models"
)

// TransactionFilter is the predicate set for transaction scans. Zero
// values mean "no constraint".
type TransactionFilter struct {
	Status        string
	PaymentMethod string
	MerchantID    string
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *float64
	MaxAmount     *float64
}

// WindowStats is the grouped summary of one time window.
type WindowStats struct {
	TotalVolume       float64
	TotalCount        int64
	Successful        int64
	Failed            int64
	Chargebacks       int64
	TotalFees         float64
	AvgProcessingTime float64
}

type CodeCount struct {
	ErrorCode string
	Count     int64
}

type MethodAgg struct {
	PaymentMethod string
	Count         int64
	Amount        float64
}

type HourAgg struct {
	Bucket time.Time
	Count  int64
	Amount float64
}

type DayAgg struct {
	Day     time.Time
	Revenue float64
}

type TierAgg struct {
	Tier    string
	Revenue float64
}

type MerchantAgg struct {
	MerchantID   string
	MerchantName string
	Revenue      float64
}

// TransactionRepository exposes the filtered scans and grouped
// aggregations the metrics aggregator is built on. All windows are
// half-open: from inclusive, to exclusive.
type TransactionRepository interface {
	List(ctx context.Context, f TransactionFilter, limit, offset int) ([]models.Transaction, int64, error)
	WindowStats(ctx context.Context, from, to time.Time) (WindowStats, error)
	VolumeBetween(ctx context.Context, from, to time.Time) (float64, error)
	FailedByErrorCode(ctx context.Context, from, to time.Time) ([]CodeCount, error)
	MethodDistribution(ctx context.Context, from, to time.Time) ([]MethodAgg, error)
	HourlyVolume(ctx context.Context, from, to time.Time) ([]HourAgg, error)
	FeesByMethod(ctx context.Context, from, to time.Time) ([]MethodAgg, error)
	FeesByTier(ctx context.Context, from, to time.Time) ([]TierAgg, error)
	DailyFees(ctx context.Context, from, to time.Time) ([]DayAgg, error)
	TopMerchantsByFees(ctx context.Context, from, to time.Time, limit int) ([]MerchantAgg, error)
}
