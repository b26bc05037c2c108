package models

// View types returned by the metrics aggregator. JSON field names match
// the dashboard's existing presentation contract.

// DashboardOverview is the top-of-page snapshot for the reference instant.
type DashboardOverview struct {
	TPV                TPVMetrics         `json:"tpv"`
	SuccessRate        SuccessRateMetric  `json:"successRate"`
	Transactions       TransactionTotals  `json:"transactions"`
	Revenue            RevenueTotals      `json:"revenue"`
	Merchants          MerchantTotals     `json:"merchants"`
	ProcessingTime     LatencyMetric      `json:"processingTime"`
	PendingWithdrawals WithdrawalPressure `json:"pendingWithdrawals"`
	UnresolvedAlerts   int64              `json:"unresolvedAlerts"`
}

type TPVMetrics struct {
	Today         float64 `json:"today"`
	ThisWeek      float64 `json:"thisWeek"`
	ThisMonth     float64 `json:"thisMonth"`
	ChangePercent float64 `json:"changePercent"`
}

type SuccessRateMetric struct {
	Value  float64 `json:"value"`
	Trend  string  `json:"trend"`
	Target float64 `json:"target"`
}

type TransactionTotals struct {
	Total      int64 `json:"total"`
	Successful int64 `json:"successful"`
	Failed     int64 `json:"failed"`
}

type RevenueTotals struct {
	Total float64 `json:"total"`
	Fees  float64 `json:"fees"`
}

type MerchantTotals struct {
	Active int64 `json:"active"`
	Growth int64 `json:"growth"`
}

type LatencyMetric struct {
	Average float64 `json:"average"`
	Trend   string  `json:"trend"`
}

type WithdrawalPressure struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// TransactionStats is the per-period transaction report.
type TransactionStats struct {
	TotalTransactions         int64            `json:"totalTransactions"`
	TotalAmount               float64          `json:"totalAmount"`
	SuccessRate               float64          `json:"successRate"`
	AverageTicket             float64          `json:"averageTicket"`
	FailedBreakdown           map[string]int64 `json:"failedBreakdown"`
	PaymentMethodDistribution []MethodShare    `json:"paymentMethodDistribution"`
	VolumeOverTime            []VolumePoint    `json:"volumeOverTime"`
}

type MethodShare struct {
	Method     string  `json:"method"`
	Count      int64   `json:"count"`
	Percentage int     `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// VolumePoint is one rolling hour bucket. Date and Hour identify the
// bucket start, so buckets on different calendar days stay distinct.
type VolumePoint struct {
	Date   string  `json:"date"`
	Hour   int     `json:"hour"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// RevenueBreakdown groups platform fee revenue by payment method and
// merchant tier, with a trailing daily trend and top earners.
type RevenueBreakdown struct {
	ByPaymentMethod []RevenueShare    `json:"byPaymentMethod"`
	ByMerchantTier  []TierRevenue     `json:"byMerchantTier"`
	DailyTrend      []DailyRevenue    `json:"dailyTrend"`
	TopMerchants    []MerchantRevenue `json:"topMerchants"`
}

type RevenueShare struct {
	Method     string  `json:"method"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type TierRevenue struct {
	Tier       string  `json:"tier"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type MerchantRevenue struct {
	MerchantID   string  `json:"merchantId"`
	MerchantName string  `json:"merchantName"`
	Revenue      float64 `json:"revenue"`
}

// StatusTotals is the per-status tally in the withdrawal report.
type StatusTotals struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}
