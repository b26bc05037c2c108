// Package metrics computes the dashboard's derived statistics from
// point-in-time reads of the record store. The aggregator holds no state
// of its own: given a consistent snapshot it returns deterministic
// numbers, and all emptiness is handled by zero-guards rather than
// errors.
package metrics

import (
	"context"
	"fmt"
	"log"
	"time"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"
)

// Periods accepted by GetTransactionStats.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const (
	DefaultTrendDays   = 30
	DefaultTopN        = 5
	maxTrendDays       = 365
	maxTopN            = 50
	merchantGrowthDays = 30
)

type Service interface {
	GetOverview(ctx context.Context, asOf time.Time) (*models.DashboardOverview, error)
	GetTransactionStats(ctx context.Context, period string, asOf time.Time) (*models.TransactionStats, error)
	GetRevenueBreakdown(ctx context.Context, asOf time.Time, days, topN int) (*models.RevenueBreakdown, error)
}

type service struct {
	transactions repositories.TransactionRepository
	withdrawals  repositories.WithdrawalRepository
	merchants    repositories.MerchantRepository
	alerts       repositories.AlertRepository
	cache        SnapshotCache
}

func NewService(
	transactions repositories.TransactionRepository,
	withdrawals repositories.WithdrawalRepository,
	merchants repositories.MerchantRepository,
	alerts repositories.AlertRepository,
	cache SnapshotCache,
) Service {
	return &service{
		transactions: transactions,
		withdrawals:  withdrawals,
		merchants:    merchants,
		alerts:       alerts,
		cache:        cache,
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart is the most recent Sunday midnight at or before t.
func weekStart(t time.Time) time.Time {
	d := dayStart(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *service) GetOverview(ctx context.Context, asOf time.Time) (*models.DashboardOverview, error) {
	const cacheKey = "dashboard:overview"

	if s.cache != nil {
		var cached models.DashboardOverview
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	startOfToday := dayStart(asOf)
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	today, err := s.transactions.WindowStats(ctx, startOfToday, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	weekVolume, err := s.transactions.VolumeBetween(ctx, weekStart(asOf), asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	monthVolume, err := s.transactions.VolumeBetween(ctx, monthStart(asOf), asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	yesterdayVolume, err := s.transactions.VolumeBetween(ctx, startOfYesterday, startOfToday)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	activeMerchants, err := s.merchants.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	newMerchants, err := s.merchants.CountCreatedSince(ctx, asOf.AddDate(0, 0, -merchantGrowthDays))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	pendingCount, pendingAmount, err := s.withdrawals.PendingTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	unresolved, err := s.alerts.CountUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	overview := buildOverview(today, weekVolume, monthVolume, yesterdayVolume,
		activeMerchants, newMerchants, pendingCount, pendingAmount, unresolved)

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, overview, 15*time.Second); err != nil {
			log.Printf("overview cache write failed: %v", err)
		}
	}
	return overview, nil
}

func periodWindow(period string, asOf time.Time) (time.Time, error) {
	switch period {
	case PeriodDay:
		return asOf.Add(-24 * time.Hour), nil
	case PeriodWeek:
		return asOf.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return asOf.AddDate(0, 0, -30), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown period %q", errs.ErrInvalidFilter, period)
	}
}

func (s *service) GetTransactionStats(ctx context.Context, period string, asOf time.Time) (*models.TransactionStats, error) {
	from, err := periodWindow(period, asOf)
	if err != nil {
		return nil, err
	}

	window, err := s.transactions.WindowStats(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	failed, err := s.transactions.FailedByErrorCode(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	methods, err := s.transactions.MethodDistribution(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	// The volume series always covers the trailing 24 hours in rolling
	// hour buckets, regardless of the requested period.
	hours, err := s.transactions.HourlyVolume(ctx, asOf.Add(-24*time.Hour), asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	return buildTransactionStats(window, failed, methods, hours), nil
}

func (s *service) GetRevenueBreakdown(ctx context.Context, asOf time.Time, days, topN int) (*models.RevenueBreakdown, error) {
	if days < 1 || days > maxTrendDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", errs.ErrInvalidFilter, maxTrendDays)
	}
	if topN < 1 || topN > maxTopN {
		return nil, fmt.Errorf("%w: top must be between 1 and %d", errs.ErrInvalidFilter, maxTopN)
	}

	cacheKey := fmt.Sprintf("revenue:breakdown:%d:%d", days, topN)
	if s.cache != nil {
		var cached models.RevenueBreakdown
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	from := dayStart(asOf).AddDate(0, 0, -(days - 1))

	byMethod, err := s.transactions.FeesByMethod(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	byTier, err := s.transactions.FeesByTier(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	daily, err := s.transactions.DailyFees(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	top, err := s.transactions.TopMerchantsByFees(ctx, from, asOf, topN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	breakdown := buildRevenueBreakdown(byMethod, byTier, daily, top)

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, breakdown, time.Minute); err != nil {
			log.Printf("revenue cache write failed: %v", err)
		}
	}
	return breakdown, nil
}
