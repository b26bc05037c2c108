// Package transaction serves the filtered, paginated transaction listing.
// Filter parameters arrive as raw strings and are validated here, before
// any query touches the record store.
package transaction

import (
	"context"
	"fmt"
	"strconv"
	"time"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"
	"pulso/internal/utils/pagination"
)

// ListRequest carries the raw query parameters of a listing call.
type ListRequest struct {
	Status        string
	PaymentMethod string
	MerchantID    string
	StartDate     string
	EndDate       string
	MinAmount     string
	MaxAmount     string
	Page          int
	Limit         int
}

type ListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   pagination.Meta      `json:"pagination"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
}

type service struct {
	transactions repositories.TransactionRepository
}

func NewService(transactions repositories.TransactionRepository) Service {
	return &service{transactions: transactions}
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}

	p := pagination.New(req.Page, req.Limit)
	if !p.Valid() {
		return nil, fmt.Errorf("%w: page must be >= 1 and limit between 1 and %d", errs.ErrInvalidFilter, pagination.MaxLimit)
	}

	transactions, total, err := s.transactions.List(ctx, filter, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	return &ListResult{
		Transactions: transactions,
		Pagination:   pagination.MetaFor(p, total),
	}, nil
}

func parseFilter(req ListRequest) (repositories.TransactionFilter, error) {
	var f repositories.TransactionFilter

	f.Status = req.Status
	f.PaymentMethod = req.PaymentMethod
	f.MerchantID = req.MerchantID

	var err error
	if f.StartDate, err = parseDate("startDate", req.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("endDate", req.EndDate); err != nil {
		return f, err
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, fmt.Errorf("%w: endDate precedes startDate", errs.ErrInvalidFilter)
	}

	if f.MinAmount, err = parseAmount("minAmount", req.MinAmount); err != nil {
		return f, err
	}
	if f.MaxAmount, err = parseAmount("maxAmount", req.MaxAmount); err != nil {
		return f, err
	}
	if f.MinAmount != nil && f.MaxAmount != nil && *f.MaxAmount < *f.MinAmount {
		return f, fmt.Errorf("%w: maxAmount is below minAmount", errs.ErrInvalidFilter)
	}

	return f, nil
}

func parseDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q is not a valid date", errs.ErrInvalidFilter, name, value)
}

func parseAmount(name, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not numeric", errs.ErrInvalidFilter, name, value)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: %s cannot be negative", errs.ErrInvalidFilter, name)
	}
	return &amount, nil
}
