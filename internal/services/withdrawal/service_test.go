package withdrawal

import (
	"context"
	"testing"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestService_List(t *testing.T) {
	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewService(new(MockWithdrawalRepo))

		_, err := svc.List(context.Background(), ListRequest{Status: "queued", Page: 1, Limit: 20})

		assert.ErrorIs(t, err, errs.ErrInvalidFilter)
	})

	t.Run("invalid pagination rejected", func(t *testing.T) {
		svc := NewService(new(MockWithdrawalRepo))

		_, err := svc.List(context.Background(), ListRequest{Page: 0, Limit: 20})

		assert.ErrorIs(t, err, errs.ErrInvalidFilter)
	})

	t.Run("stats cover the full filtered set regardless of the page", func(t *testing.T) {
		repo := new(MockWithdrawalRepo)
		filter := repositories.WithdrawalFilter{MerchantID: "MERCH-002"}

		repo.On("List", mock.Anything, filter, 2, 2).
			Return([]models.Withdrawal{{WithdrawalID: "WDL-A"}, {WithdrawalID: "WDL-B"}}, int64(7), nil)
		repo.On("StatsByStatus", mock.Anything, filter).
			Return([]repositories.StatusAgg{
				{Status: models.WdStatusPending, Count: 3, Amount: 45000},
				{Status: models.WdStatusCompleted, Count: 4, Amount: 120000},
			}, nil)

		result, err := NewService(repo).List(context.Background(), ListRequest{
			MerchantID: "MERCH-002", Page: 2, Limit: 2,
		})

		assert.NoError(t, err)
		assert.Len(t, result.Withdrawals, 2)
		assert.Equal(t, int64(3), result.Stats[models.WdStatusPending].Count)
		assert.Equal(t, float64(120000), result.Stats[models.WdStatusCompleted].Amount)
		assert.Equal(t, int64(7), result.Pagination.Total)
		assert.Equal(t, int64(4), result.Pagination.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("status filter narrows both the listing and the stats", func(t *testing.T) {
		repo := new(MockWithdrawalRepo)
		filter := repositories.WithdrawalFilter{Status: models.WdStatusPending}

		repo.On("List", mock.Anything, filter, 20, 0).
			Return([]models.Withdrawal{}, int64(0), nil)
		repo.On("StatsByStatus", mock.Anything, filter).
			Return([]repositories.StatusAgg{}, nil)

		result, err := NewService(repo).List(context.Background(), ListRequest{
			Status: models.WdStatusPending, Page: 1, Limit: 20,
		})

		assert.NoError(t, err)
		assert.Empty(t, result.Stats)
		repo.AssertExpectations(t)
	})
}
