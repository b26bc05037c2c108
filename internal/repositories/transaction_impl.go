package repositories

import (
	"context"
	"fmt"
	"time"

	"pulso/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Transaction{})
}

func applyTransactionFilter(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.MerchantID != "" {
		q = q.Where("merchant_id = ?", f.MerchantID)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

func (r *transactionRepository) List(ctx context.Context, f TransactionFilter, limit, offset int) ([]models.Transaction, int64, error) {
	q := applyTransactionFilter(r.scoped(ctx), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var transactions []models.Transaction
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, total, nil
}

func (r *transactionRepository) WindowStats(ctx context.Context, from, to time.Time) (WindowStats, error) {
	var s WindowStats
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select(`COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'chargeback' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(fee), 0),
			COALESCE(AVG(processing_time), 0)`).
		Row().Scan(&s.TotalCount, &s.TotalVolume, &s.Successful, &s.Failed,
			&s.Chargebacks, &s.TotalFees, &s.AvgProcessingTime)
	if err != nil {
		return WindowStats{}, fmt.Errorf("window stats: %w", err)
	}
	return s, nil
}

func (r *transactionRepository) VolumeBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var volume float64
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("volume between: %w", err)
	}
	return volume, nil
}

func (r *transactionRepository) FailedByErrorCode(ctx context.Context, from, to time.Time) ([]CodeCount, error) {
	var rows []CodeCount
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, models.TxStatusFailed).
		Select("error_code, COUNT(*) AS count").
		Group("error_code").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed breakdown: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) MethodDistribution(ctx context.Context, from, to time.Time) ([]MethodAgg, error) {
	var rows []MethodAgg
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("payment_method").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("method distribution: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) HourlyVolume(ctx context.Context, from, to time.Time) ([]HourAgg, error) {
	var rows []HourAgg
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("date_trunc('hour', created_at) AS bucket, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("hourly volume: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) FeesByMethod(ctx context.Context, from, to time.Time) ([]MethodAgg, error) {
	var rows []MethodAgg
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(fee), 0) AS amount").
		Group("payment_method").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fees by method: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) FeesByTier(ctx context.Context, from, to time.Time) ([]TierAgg, error) {
	var rows []TierAgg
	err := r.scoped(ctx).
		Joins("JOIN merchants ON merchants.merchant_id = transactions.merchant_id").
		Where("transactions.created_at >= ? AND transactions.created_at < ?", from, to).
		Select("merchants.tier AS tier, COALESCE(SUM(transactions.fee), 0) AS revenue").
		Group("merchants.tier").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fees by tier: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) DailyFees(ctx context.Context, from, to time.Time) ([]DayAgg, error) {
	var rows []DayAgg
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("date_trunc('day', created_at) AS day, COALESCE(SUM(fee), 0) AS revenue").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("daily fees: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) TopMerchantsByFees(ctx context.Context, from, to time.Time, limit int) ([]MerchantAgg, error) {
	var rows []MerchantAgg
	err := r.scoped(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("merchant_id, merchant_name, COALESCE(SUM(fee), 0) AS revenue").
		Group("merchant_id, merchant_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top merchants: %w", err)
	}
	return rows, nil
}
