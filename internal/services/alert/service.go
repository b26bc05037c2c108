// Package alert evaluates metric thresholds and owns the alert
// lifecycle. The evaluator is idempotent per cycle: an unresolved alert
// of a given type and merchant scope suppresses re-emission until an
// operator resolves it.
package alert

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	errs "pulso/internal/errors"
	"pulso/internal/models"
	"pulso/internal/repositories"
	"pulso/internal/utils/pagination"

	"gorm.io/gorm"
)

const trailingVolumeDays = 7

type Service interface {
	Evaluate(ctx context.Context, asOf time.Time, signals Signals) ([]models.Alert, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	MarkRead(ctx context.Context, id uint) (*models.Alert, error)
	Resolve(ctx context.Context, id uint) (*models.Alert, error)
	ListThresholds(ctx context.Context) ([]models.AlertThreshold, error)
	UpdateThreshold(ctx context.Context, alertType string, req ThresholdUpdateRequest) (*models.AlertThreshold, error)
}

type service struct {
	alerts       repositories.AlertRepository
	thresholds   repositories.ThresholdRepository
	transactions repositories.TransactionRepository
}

func NewService(
	alerts repositories.AlertRepository,
	thresholds repositories.ThresholdRepository,
	transactions repositories.TransactionRepository,
) Service {
	return &service{
		alerts:       alerts,
		thresholds:   thresholds,
		transactions: transactions,
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Evaluate runs one evaluation cycle over the enabled thresholds and
// returns the alerts it created. Disabled thresholds are skipped, and a
// metric whose inputs are absent (no fraud signal, no trailing volume)
// is skipped rather than treated as a breach.
func (s *service) Evaluate(ctx context.Context, asOf time.Time, signals Signals) ([]models.Alert, error) {
	thresholds, err := s.thresholds.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	if len(thresholds) == 0 {
		return nil, nil
	}

	var created []models.Alert
	for _, t := range thresholds {
		current, scope, ok, err := s.currentValue(ctx, t.Type, asOf, signals)
		if err != nil {
			return created, err
		}
		if !ok || !breached(t.Type, current, t.Threshold) {
			continue
		}

		alert := models.Alert{
			Type:         t.Type,
			Severity:     severityFor(current, t.Threshold),
			Title:        titleFor(t.Type),
			Message:      messageFor(t.Type, current, t.Threshold),
			Metric:       metricFor(t.Type),
			Threshold:    t.Threshold,
			CurrentValue: current,
			MerchantID:   scope,
		}

		inserted, err := s.alerts.CreateIfNoUnresolved(ctx, &alert)
		if err != nil {
			return created, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		if inserted {
			created = append(created, alert)
		}
	}
	return created, nil
}

// currentValue computes the metric for one alert type. The bool reports
// whether the metric is defined for this cycle.
func (s *service) currentValue(ctx context.Context, alertType string, asOf time.Time, signals Signals) (float64, string, bool, error) {
	startOfToday := dayStart(asOf)

	switch alertType {
	case models.AlertSuccessRate:
		today, err := s.transactions.WindowStats(ctx, startOfToday, asOf)
		if err != nil {
			return 0, "", false, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		if today.TotalCount == 0 {
			// No traffic counts as fully successful, never a breach.
			return 100, "", true, nil
		}
		return float64(today.Successful) / float64(today.TotalCount) * 100, "", true, nil

	case models.AlertHighChargebacks:
		last24, err := s.transactions.WindowStats(ctx, asOf.Add(-24*time.Hour), asOf)
		if err != nil {
			return 0, "", false, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		if last24.TotalCount == 0 {
			return 0, "", false, nil
		}
		return float64(last24.Chargebacks) / float64(last24.TotalCount) * 100, "", true, nil

	case models.AlertUnusualVolume:
		todayVolume, err := s.transactions.VolumeBetween(ctx, startOfToday, asOf)
		if err != nil {
			return 0, "", false, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		trailing, err := s.transactions.VolumeBetween(ctx, startOfToday.AddDate(0, 0, -trailingVolumeDays), startOfToday)
		if err != nil {
			return 0, "", false, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		avg := trailing / trailingVolumeDays
		if avg == 0 {
			return 0, "", false, nil
		}
		return math.Abs(todayVolume-avg) / avg * 100, "", true, nil

	case models.AlertSystemLatency:
		today, err := s.transactions.WindowStats(ctx, startOfToday, asOf)
		if err != nil {
			return 0, "", false, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
		}
		if today.TotalCount == 0 {
			return 0, "", false, nil
		}
		return today.AvgProcessingTime, "", true, nil

	case models.AlertFraudSuspected:
		if signals.FraudScore == nil {
			return 0, "", false, nil
		}
		return *signals.FraudScore, signals.MerchantID, true, nil
	}

	return 0, "", false, nil
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	if req.Severity != "" && !models.ValidAlertSeverity(req.Severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", errs.ErrInvalidFilter, req.Severity)
	}
	if req.Type != "" && !models.ValidAlertType(req.Type) {
		return nil, fmt.Errorf("%w: unknown alert type %q", errs.ErrInvalidFilter, req.Type)
	}

	p := pagination.New(req.Page, req.Limit)
	if !p.Valid() {
		return nil, fmt.Errorf("%w: page must be >= 1 and limit between 1 and %d", errs.ErrInvalidFilter, pagination.MaxLimit)
	}

	filter := repositories.AlertFilter{
		Severity:   req.Severity,
		Type:       req.Type,
		IsResolved: req.IsResolved,
	}

	alerts, total, err := s.alerts.List(ctx, filter, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	unresolved, err := s.alerts.CountUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	severityCounts, err := s.alerts.SeverityCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}

	return &ListResult{
		Alerts:          alerts,
		UnresolvedCount: unresolved,
		SeverityCounts:  severityCounts,
		Pagination:      pagination.MetaFor(p, total),
	}, nil
}

func (s *service) MarkRead(ctx context.Context, id uint) (*models.Alert, error) {
	if err := s.alerts.MarkRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAlertNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	return s.getAlert(ctx, id)
}

// Resolve marks an alert resolved. Resolution is terminal: resolving an
// already resolved alert returns it unchanged.
func (s *service) Resolve(ctx context.Context, id uint) (*models.Alert, error) {
	alert, err := s.getAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.IsResolved {
		return alert, nil
	}
	if err := s.alerts.Resolve(ctx, id, time.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	return s.getAlert(ctx, id)
}

func (s *service) getAlert(ctx context.Context, id uint) (*models.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAlertNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	return alert, nil
}

func (s *service) ListThresholds(ctx context.Context) ([]models.AlertThreshold, error) {
	thresholds, err := s.thresholds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	return thresholds, nil
}

func (s *service) UpdateThreshold(ctx context.Context, alertType string, req ThresholdUpdateRequest) (*models.AlertThreshold, error) {
	if !models.ValidAlertType(alertType) {
		return nil, errs.ErrThresholdNotFound
	}
	if req.Threshold != nil && *req.Threshold < 0 {
		return nil, fmt.Errorf("%w: threshold cannot be negative", errs.ErrInvalidFilter)
	}

	threshold, err := s.thresholds.UpdateByType(ctx, alertType, repositories.ThresholdUpdate{
		Threshold:   req.Threshold,
		IsEnabled:   req.IsEnabled,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrThresholdNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnavailable, err)
	}
	return threshold, nil
}
