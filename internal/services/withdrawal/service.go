// Package withdrawal serves the withdrawal listing with its per-status
// summary. The summary is computed over the full filtered set before
// pagination, so the tallies never depend on page size.
package withdrawal

import (
	"context"
	"fmt"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"
	"pulso/internal/utils/pagination"
)

type ListRequest struct {
	Status     string
	MerchantID string
	Page       int
	Limit      int
}

type ListResult struct {
	Withdrawals []models.Withdrawal            `json:"withdrawals"`
	Stats       map[string]models.StatusTotals `json:"stats"`
	Pagination  pagination.Meta                `json:"pagination"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
}

type service struct {
	withdrawals repositories.WithdrawalRepository
}

func NewService(withdrawals repositories.WithdrawalRepository) Service {
	return &service{withdrawals: withdrawals}
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	if req.Status != "" && !models.ValidWithdrawalStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown withdrawal status %q", errs.ErrInvalidFilter, req.Status)
	}

	p := pagination.New(req.Page, req.Limit)
	if !p.Valid() {
		return nil, fmt.Errorf("%w: page must be >= 1 and limit between 1 and %d", errs.ErrInvalidFilter, pagination.MaxLimit)
	}

	filter := repositories.WithdrawalFilter{
		Status:     req.Status,
		MerchantID: req.MerchantID,
	}

	withdrawals, total, err := s.withdrawals.List(ctx, filter, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	rows, err := s.withdrawals.StatsByStatus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	stats := make(map[string]models.StatusTotals, len(rows))
	for _, row := range rows {
		stats[row.Status] = models.StatusTotals{Count: row.Count, Amount: row.Amount}
	}

	return &ListResult{
		Withdrawals: withdrawals,
		Stats:       stats,
		Pagination:  pagination.MetaFor(p, total),
	}, nil
}
