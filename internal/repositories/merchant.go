package repositories

import (
	"context"
	"fmt"
	"time"

	"pulso/internal/models"

	"gorm.io/gorm"
)

// MerchantRepository exposes the merchant counts the overview folds in.
type MerchantRepository interface {
	CountActive(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type merchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("status = ?", models.MerchantStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active merchants: %w", err)
	}
	return count, nil
}

func (r *merchantRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count recent merchants: %w", err)
	}
	return count, nil
}
