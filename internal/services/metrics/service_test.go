package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) List(ctx context.Context, f repositories.TransactionFilter, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) WindowStats(ctx context.Context, from, to time.Time) (repositories.WindowStats, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(repositories.WindowStats), args.Error(1)
}

func (m *MockTransactionRepo) VolumeBetween(ctx context.Context, from, to time.Time) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTransactionRepo) FailedByErrorCode(ctx context.Context, from, to time.Time) ([]repositories.CodeCount, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.CodeCount), args.Error(1)
}

func (m *MockTransactionRepo) MethodDistribution(ctx context.Context, from, to time.Time) ([]repositories.MethodAgg, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.MethodAgg), args.Error(1)
}

func (m *MockTransactionRepo) HourlyVolume(ctx context.Context, from, to time.Time) ([]repositories.HourAgg, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.HourAgg), args.Error(1)
}

func (m *MockTransactionRepo) FeesByMethod(ctx context.Context, from, to time.Time) ([]repositories.MethodAgg, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.MethodAgg), args.Error(1)
}

func (m *MockTransactionRepo) FeesByTier(ctx context.Context, from, to time.Time) ([]repositories.TierAgg, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.TierAgg), args.Error(1)
}

func (m *MockTransactionRepo) DailyFees(ctx context.Context, from, to time.Time) ([]repositories.DayAgg, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repositories.DayAgg), args.Error(1)
}

func (m *MockTransactionRepo) TopMerchantsByFees(ctx context.Context, from, to time.Time, limit int) ([]repositories.MerchantAgg, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]repositories.MerchantAgg), args.Error(1)
}

type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) List(ctx context.Context, f repositories.WithdrawalFilter, limit, offset int) ([]models.Withdrawal, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]models.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepo) StatsByStatus(ctx context.Context, f repositories.WithdrawalFilter) ([]repositories.StatusAgg, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]repositories.StatusAgg), args.Error(1)
}

func (m *MockWithdrawalRepo) PendingTotals(ctx context.Context) (int64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

type MockMerchantRepo struct {
	mock.Mock
}

func (m *MockMerchantRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMerchantRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type MockAlertRepo struct {
	mock.Mock
}

func (m *MockAlertRepo) List(ctx context.Context, f repositories.AlertFilter, limit, offset int) ([]models.Alert, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]models.Alert), args.Get(1).(int64), args.Error(2)
}

func (m *MockAlertRepo) GetByID(ctx context.Context, id uint) (*models.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *MockAlertRepo) CountUnresolved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepo) SeverityCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockAlertRepo) CreateIfNoUnresolved(ctx context.Context, alert *models.Alert) (bool, error) {
	args := m.Called(ctx, alert)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepo) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlertRepo) Resolve(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func newTestService(tx *MockTransactionRepo, wd *MockWithdrawalRepo, mc *MockMerchantRepo, al *MockAlertRepo) Service {
	return NewService(tx, wd, mc, al, nil)
}

func TestService_GetOverview(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("empty store reports healthy defaults", func(t *testing.T) {
		tx := new(MockTransactionRepo)
		wd := new(MockWithdrawalRepo)
		mc := new(MockMerchantRepo)
		al := new(MockAlertRepo)

		tx.On("WindowStats", mock.Anything, mock.Anything, mock.Anything).Return(repositories.WindowStats{}, nil)
		tx.On("VolumeBetween", mock.Anything, mock.Anything, mock.Anything).Return(float64(0), nil)
		mc.On("CountActive", mock.Anything).Return(int64(0), nil)
		mc.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), nil)
		wd.On("PendingTotals", mock.Anything).Return(int64(0), float64(0), nil)
		al.On("CountUnresolved", mock.Anything).Return(int64(0), nil)

		overview, err := newTestService(tx, wd, mc, al).GetOverview(context.Background(), asOf)

		assert.NoError(t, err)
		assert.Equal(t, float64(100), overview.SuccessRate.Value)
		assert.Equal(t, float64(0), overview.TPV.ChangePercent)
		assert.Equal(t, int64(0), overview.Transactions.Total)
		tx.AssertExpectations(t)
	})

	t.Run("window boundaries are midnight-aligned", func(t *testing.T) {
		tx := new(MockTransactionRepo)
		wd := new(MockWithdrawalRepo)
		mc := new(MockMerchantRepo)
		al := new(MockAlertRepo)

		startOfToday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		startOfYesterday := startOfToday.AddDate(0, 0, -1)
		startOfWeek := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		startOfMonth := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		tx.On("WindowStats", mock.Anything, startOfToday, asOf).
			Return(repositories.WindowStats{TotalVolume: 5000, TotalCount: 10, Successful: 10}, nil)
		tx.On("VolumeBetween", mock.Anything, startOfWeek, asOf).Return(float64(20000), nil)
		tx.On("VolumeBetween", mock.Anything, startOfMonth, asOf).Return(float64(90000), nil)
		tx.On("VolumeBetween", mock.Anything, startOfYesterday, startOfToday).Return(float64(4000), nil)
		mc.On("CountActive", mock.Anything).Return(int64(18), nil)
		mc.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(2), nil)
		wd.On("PendingTotals", mock.Anything).Return(int64(3), float64(75000), nil)
		al.On("CountUnresolved", mock.Anything).Return(int64(1), nil)

		overview, err := newTestService(tx, wd, mc, al).GetOverview(context.Background(), asOf)

		assert.NoError(t, err)
		assert.Equal(t, float64(5000), overview.TPV.Today)
		assert.Equal(t, float64(20000), overview.TPV.ThisWeek)
		assert.Equal(t, float64(90000), overview.TPV.ThisMonth)
		assert.Equal(t, float64(25), overview.TPV.ChangePercent)
		assert.Equal(t, int64(18), overview.Merchants.Active)
		tx.AssertExpectations(t)
	})

	t.Run("store failure maps to data unavailable", func(t *testing.T) {
		tx := new(MockTransactionRepo)
		wd := new(MockWithdrawalRepo)
		mc := new(MockMerchantRepo)
		al := new(MockAlertRepo)

		tx.On("WindowStats", mock.Anything, mock.Anything, mock.Anything).
			Return(repositories.WindowStats{}, errors.New("connection refused"))

		_, err := newTestService(tx, wd, mc, al).GetOverview(context.Background(), asOf)

		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})
}

func TestService_GetTransactionStats(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("unknown period is rejected", func(t *testing.T) {
		svc := newTestService(new(MockTransactionRepo), new(MockWithdrawalRepo), new(MockMerchantRepo), new(MockAlertRepo))

		_, err := svc.GetTransactionStats(context.Background(), "year", asOf)

		assert.ErrorIs(t, err, errs.ErrInvalidFilter)
	})

	t.Run("volume series always covers the trailing 24 hours", func(t *testing.T) {
		tx := new(MockTransactionRepo)

		weekAgo := asOf.AddDate(0, 0, -7)
		tx.On("WindowStats", mock.Anything, weekAgo, asOf).
			Return(repositories.WindowStats{TotalCount: 10, Successful: 8, Failed: 2, TotalVolume: 1000}, nil)
		tx.On("FailedByErrorCode", mock.Anything, weekAgo, asOf).
			Return([]repositories.CodeCount{{ErrorCode: "card_declined", Count: 2}}, nil)
		tx.On("MethodDistribution", mock.Anything, weekAgo, asOf).
			Return([]repositories.MethodAgg{}, nil)
		tx.On("HourlyVolume", mock.Anything, asOf.Add(-24*time.Hour), asOf).
			Return([]repositories.HourAgg{}, nil)

		svc := newTestService(tx, new(MockWithdrawalRepo), new(MockMerchantRepo), new(MockAlertRepo))
		stats, err := svc.GetTransactionStats(context.Background(), PeriodWeek, asOf)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), stats.TotalTransactions)
		assert.Equal(t, float64(80), stats.SuccessRate)
		assert.Equal(t, map[string]int64{"card_declined": 2}, stats.FailedBreakdown)
		tx.AssertExpectations(t)
	})
}

func TestService_GetRevenueBreakdown(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("range validation", func(t *testing.T) {
		svc := newTestService(new(MockTransactionRepo), new(MockWithdrawalRepo), new(MockMerchantRepo), new(MockAlertRepo))

		_, err := svc.GetRevenueBreakdown(context.Background(), asOf, 0, 5)
		assert.ErrorIs(t, err, errs.ErrInvalidFilter)

		_, err = svc.GetRevenueBreakdown(context.Background(), asOf, 400, 5)
		assert.ErrorIs(t, err, errs.ErrInvalidFilter)

		_, err = svc.GetRevenueBreakdown(context.Background(), asOf, 30, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidFilter)
	})

	t.Run("trend window includes the reference day", func(t *testing.T) {
		tx := new(MockTransactionRepo)

		// 7 trailing days counted inclusive of today: from is 6 days back.
		from := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
		tx.On("FeesByMethod", mock.Anything, from, asOf).
			Return([]repositories.MethodAgg{{PaymentMethod: "card", Amount: 750}}, nil)
		tx.On("FeesByTier", mock.Anything, from, asOf).
			Return([]repositories.TierAgg{{Tier: "enterprise", Revenue: 750}}, nil)
		tx.On("DailyFees", mock.Anything, from, asOf).
			Return([]repositories.DayAgg{}, nil)
		tx.On("TopMerchantsByFees", mock.Anything, from, asOf, 5).
			Return([]repositories.MerchantAgg{}, nil)

		svc := newTestService(tx, new(MockWithdrawalRepo), new(MockMerchantRepo), new(MockAlertRepo))
		breakdown, err := svc.GetRevenueBreakdown(context.Background(), asOf, 7, 5)

		assert.NoError(t, err)
		assert.Equal(t, float64(100), breakdown.ByPaymentMethod[0].Percentage)
		tx.AssertExpectations(t)
	})
}
