package metrics

import (
	"math"
	"sort"

	"pulso/internal/models"
	"pulso/internal/repositories"
)

// SuccessRateTarget is the percentage the dashboard treats as healthy.
const SuccessRateTarget = 95

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// successRate reports successful/total as a percentage. A window with no
// traffic is reported as fully successful rather than undefined.
func successRate(successful, total int64) float64 {
	if total == 0 {
		return 100
	}
	return round1(float64(successful) / float64(total) * 100)
}

// changePercent is the day-over-day volume change. Zero yesterday volume
// reports 0, understating volatility instead of failing.
func changePercent(today, yesterday float64) float64 {
	if yesterday == 0 {
		return 0
	}
	return round1((today - yesterday) / yesterday * 100)
}

func buildOverview(
	today repositories.WindowStats,
	weekVolume, monthVolume, yesterdayVolume float64,
	activeMerchants, newMerchants int64,
	pendingCount int64, pendingAmount float64,
	unresolvedAlerts int64,
) *models.DashboardOverview {
	rate := successRate(today.Successful, today.TotalCount)
	trend := "up"
	if rate < SuccessRateTarget {
		trend = "down"
	}

	return &models.DashboardOverview{
		TPV: models.TPVMetrics{
			Today:         today.TotalVolume,
			ThisWeek:      weekVolume,
			ThisMonth:     monthVolume,
			ChangePercent: changePercent(today.TotalVolume, yesterdayVolume),
		},
		SuccessRate: models.SuccessRateMetric{
			Value:  rate,
			Trend:  trend,
			Target: SuccessRateTarget,
		},
		Transactions: models.TransactionTotals{
			Total:      today.TotalCount,
			Successful: today.Successful,
			Failed:     today.Failed,
		},
		Revenue: models.RevenueTotals{
			Total: today.TotalFees,
			Fees:  today.TotalFees,
		},
		Merchants: models.MerchantTotals{
			Active: activeMerchants,
			Growth: newMerchants,
		},
		ProcessingTime: models.LatencyMetric{
			Average: math.Round(today.AvgProcessingTime),
			Trend:   "stable",
		},
		PendingWithdrawals: models.WithdrawalPressure{
			Count:  pendingCount,
			Amount: pendingAmount,
		},
		UnresolvedAlerts: unresolvedAlerts,
	}
}

func buildTransactionStats(
	window repositories.WindowStats,
	failed []repositories.CodeCount,
	methods []repositories.MethodAgg,
	hours []repositories.HourAgg,
) *models.TransactionStats {
	averageTicket := 0.0
	if window.TotalCount > 0 {
		averageTicket = round2(window.TotalVolume / float64(window.TotalCount))
	}

	// Rows without an error code stay out of the map but still count
	// toward the window's failed total.
	breakdown := make(map[string]int64)
	for _, row := range failed {
		if row.ErrorCode != "" {
			breakdown[row.ErrorCode] = row.Count
		}
	}

	distribution := make([]models.MethodShare, 0, len(methods))
	for _, m := range methods {
		percentage := 0
		if window.TotalCount > 0 {
			percentage = int(math.Round(float64(m.Count) / float64(window.TotalCount) * 100))
		}
		distribution = append(distribution, models.MethodShare{
			Method:     m.PaymentMethod,
			Count:      m.Count,
			Percentage: percentage,
			Amount:     m.Amount,
		})
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].Bucket.Before(hours[j].Bucket)
	})
	volume := make([]models.VolumePoint, 0, len(hours))
	for _, h := range hours {
		volume = append(volume, models.VolumePoint{
			Date:   h.Bucket.Format("2006-01-02"),
			Hour:   h.Bucket.Hour(),
			Count:  h.Count,
			Amount: h.Amount,
		})
	}

	return &models.TransactionStats{
		TotalTransactions:         window.TotalCount,
		TotalAmount:               window.TotalVolume,
		SuccessRate:               successRate(window.Successful, window.TotalCount),
		AverageTicket:             averageTicket,
		FailedBreakdown:           breakdown,
		PaymentMethodDistribution: distribution,
		VolumeOverTime:            volume,
	}
}

func buildRevenueBreakdown(
	byMethod []repositories.MethodAgg,
	byTier []repositories.TierAgg,
	daily []repositories.DayAgg,
	top []repositories.MerchantAgg,
) *models.RevenueBreakdown {
	var methodTotal float64
	for _, m := range byMethod {
		methodTotal += m.Amount
	}
	methodShares := make([]models.RevenueShare, 0, len(byMethod))
	for _, m := range byMethod {
		methodShares = append(methodShares, models.RevenueShare{
			Method:     m.PaymentMethod,
			Revenue:    m.Amount,
			Percentage: share(m.Amount, methodTotal),
		})
	}

	var tierTotal float64
	for _, t := range byTier {
		tierTotal += t.Revenue
	}
	tierShares := make([]models.TierRevenue, 0, len(byTier))
	for _, t := range byTier {
		tierShares = append(tierShares, models.TierRevenue{
			Tier:       t.Tier,
			Revenue:    t.Revenue,
			Percentage: share(t.Revenue, tierTotal),
		})
	}

	trend := make([]models.DailyRevenue, 0, len(daily))
	for _, d := range daily {
		trend = append(trend, models.DailyRevenue{
			Date:    d.Day.Format("2006-01-02"),
			Revenue: d.Revenue,
		})
	}

	merchants := make([]models.MerchantRevenue, 0, len(top))
	for _, m := range top {
		merchants = append(merchants, models.MerchantRevenue{
			MerchantID:   m.MerchantID,
			MerchantName: m.MerchantName,
			Revenue:      m.Revenue,
		})
	}

	return &models.RevenueBreakdown{
		ByPaymentMethod: methodShares,
		ByMerchantTier:  tierShares,
		DailyTrend:      trend,
		TopMerchants:    merchants,
	}
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round1(part / total * 100)
}
