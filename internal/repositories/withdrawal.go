package repositories

import (
	"context"
	"fmt"

	"pulso/internal/models"

	"gorm.io/gorm"
)

// WithdrawalFilter is the predicate set for withdrawal scans.
type WithdrawalFilter struct {
	Status     string
	MerchantID string
}

type StatusAgg struct {
	Status string
	Count  int64
	Amount float64
}

// WithdrawalRepository exposes filtered listing and the per-status
// grouped sums. StatsByStatus covers the full filtered set, never a page.
type WithdrawalRepository interface {
	List(ctx context.Context, f WithdrawalFilter, limit, offset int) ([]models.Withdrawal, int64, error)
	StatsByStatus(ctx context.Context, f WithdrawalFilter) ([]StatusAgg, error)
	PendingTotals(ctx context.Context) (count int64, amount float64, err error)
}

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Withdrawal{})
}

func applyWithdrawalFilter(q *gorm.DB, f WithdrawalFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MerchantID != "" {
		q = q.Where("merchant_id = ?", f.MerchantID)
	}
	return q
}

func (r *withdrawalRepository) List(ctx context.Context, f WithdrawalFilter, limit, offset int) ([]models.Withdrawal, int64, error) {
	q := applyWithdrawalFilter(r.scoped(ctx), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	var withdrawals []models.Withdrawal
	err := q.Order("requested_at DESC").Limit(limit).Offset(offset).Find(&withdrawals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

func (r *withdrawalRepository) StatsByStatus(ctx context.Context, f WithdrawalFilter) ([]StatusAgg, error) {
	var rows []StatusAgg
	err := applyWithdrawalFilter(r.scoped(ctx), f).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("withdrawal stats: %w", err)
	}
	return rows, nil
}

func (r *withdrawalRepository) PendingTotals(ctx context.Context) (int64, float64, error) {
	var count int64
	var amount float64
	err := r.scoped(ctx).
		Where("status IN ?", []string{models.WdStatusPending, models.WdStatusProcessing}).
		Select("COUNT(*), COALESCE(SUM(amount), 0)").
		Row().Scan(&count, &amount)
	if err != nil {
		return 0, 0, fmt.Errorf("pending withdrawal totals: %w", err)
	}
	return count, amount, nil
}
