package repositories

import (
	"context"
	"fmt"

	"pulso/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThresholdUpdate carries the editable fields of an alert threshold.
// Nil means "leave unchanged".
type ThresholdUpdate struct {
	Threshold   *float64
	IsEnabled   *bool
	Description *string
}

// ThresholdRepository is CRUD over the per-type alert configuration.
type ThresholdRepository interface {
	List(ctx context.Context) ([]models.AlertThreshold, error)
	ListEnabled(ctx context.Context) ([]models.AlertThreshold, error)
	GetByType(ctx context.Context, alertType string) (*models.AlertThreshold, error)
	UpdateByType(ctx context.Context, alertType string, upd ThresholdUpdate) (*models.AlertThreshold, error)
	SeedDefaults(ctx context.Context) error
}

type thresholdRepository struct {
	db *gorm.DB
}

func NewThresholdRepository(db *gorm.DB) ThresholdRepository {
	return &thresholdRepository{db: db}
}

func (r *thresholdRepository) List(ctx context.Context) ([]models.AlertThreshold, error) {
	var thresholds []models.AlertThreshold
	err := r.db.WithContext(ctx).Order("type ASC").Find(&thresholds).Error
	if err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	return thresholds, nil
}

func (r *thresholdRepository) ListEnabled(ctx context.Context) ([]models.AlertThreshold, error) {
	var thresholds []models.AlertThreshold
	err := r.db.WithContext(ctx).Where("is_enabled = true").Find(&thresholds).Error
	if err != nil {
		return nil, fmt.Errorf("list enabled thresholds: %w", err)
	}
	return thresholds, nil
}

func (r *thresholdRepository) GetByType(ctx context.Context, alertType string) (*models.AlertThreshold, error) {
	var threshold models.AlertThreshold
	err := r.db.WithContext(ctx).Where("type = ?", alertType).First(&threshold).Error
	if err != nil {
		return nil, err
	}
	return &threshold, nil
}

func (r *thresholdRepository) UpdateByType(ctx context.Context, alertType string, upd ThresholdUpdate) (*models.AlertThreshold, error) {
	updates := map[string]interface{}{}
	if upd.Threshold != nil {
		updates["threshold"] = *upd.Threshold
	}
	if upd.IsEnabled != nil {
		updates["is_enabled"] = *upd.IsEnabled
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.AlertThreshold{}).
			Where("type = ?", alertType).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("update threshold: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.GetByType(ctx, alertType)
}

// SeedDefaults inserts the default configuration for any type missing a
// row. Existing rows are left untouched.
func (r *thresholdRepository) SeedDefaults(ctx context.Context) error {
	defaults := models.DefaultAlertThresholds()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}},
			DoNothing: true,
		}).
		Create(&defaults).Error
	if err != nil {
		return fmt.Errorf("seed thresholds: %w", err)
	}
	return nil
}
