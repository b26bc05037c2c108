package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulso/internal/models"

	"gorm.io/gorm"
)

// AlertFilter is the predicate set for alert scans.
type AlertFilter struct {
	Severity   string
	Type       string
	IsResolved *bool
}

// AlertRepository owns the alert write path. CreateIfNoUnresolved is the
// atomic insert the evaluator requires: two racing evaluation cycles
// cannot both insert an alert for the same type and merchant scope.
type AlertRepository interface {
	List(ctx context.Context, f AlertFilter, limit, offset int) ([]models.Alert, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Alert, error)
	CountUnresolved(ctx context.Context) (int64, error)
	SeverityCounts(ctx context.Context) (map[string]int64, error)
	CreateIfNoUnresolved(ctx context.Context, alert *models.Alert) (bool, error)
	MarkRead(ctx context.Context, id uint) error
	Resolve(ctx context.Context, id uint, at time.Time) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Alert{})
}

func (r *alertRepository) List(ctx context.Context, f AlertFilter, limit, offset int) ([]models.Alert, int64, error) {
	q := r.scoped(ctx)
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.IsResolved != nil {
		q = q.Where("is_resolved = ?", *f.IsResolved)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}

	var alerts []models.Alert
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, total, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (*models.Alert, error) {
	var alert models.Alert
	err := r.scoped(ctx).Where("id = ?", id).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) CountUnresolved(ctx context.Context) (int64, error) {
	var count int64
	err := r.scoped(ctx).Where("is_resolved = false").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unresolved alerts: %w", err)
	}
	return count, nil
}

func (r *alertRepository) SeverityCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Severity string
		Count    int64
	}
	err := r.scoped(ctx).
		Where("is_resolved = false").
		Select("severity, COUNT(*) AS count").
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("severity counts: %w", err)
	}

	counts := map[string]int64{
		models.SeverityCritical: 0,
		models.SeverityHigh:     0,
		models.SeverityMedium:   0,
		models.SeverityLow:      0,
	}
	for _, row := range rows {
		counts[row.Severity] = row.Count
	}
	return counts, nil
}

// CreateIfNoUnresolved inserts the alert unless an unresolved alert with
// the same type and merchant scope already exists. The partial unique
// index on (type, merchant_id) WHERE is_resolved = false catches races
// between concurrent evaluation cycles; a duplicate-key error is reported
// as "not created", not as a failure.
func (r *alertRepository) CreateIfNoUnresolved(ctx context.Context, alert *models.Alert) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&models.Alert{}).
			Where("type = ? AND merchant_id = ? AND is_resolved = false", alert.Type, alert.MerchantID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(alert).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create alert: %w", err)
	}
	return true, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.scoped(ctx).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("mark alert read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Resolve marks an unresolved alert resolved. Resolving an already
// resolved alert is a no-op so ResolvedAt is never overwritten.
func (r *alertRepository) Resolve(ctx context.Context, id uint, at time.Time) error {
	res := r.scoped(ctx).
		Where("id = ? AND is_resolved = false", id).
		Updates(map[string]interface{}{"is_resolved": true, "resolved_at": at})
	if res.Error != nil {
		return fmt.Errorf("resolve alert: %w", res.Error)
	}
	return nil
}
