package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// SavingFilter narrows savings list queries
type SavingFilter struct {
	Types []string
	Range DateRange
}

// SavingRepository defines the interface for savings data access
type SavingRepository interface {
	Create(ctx context.Context, saving *models.Saving) error
	FindByID(ctx context.Context, id, userID uint) (*models.Saving, error)
	FindByUser(ctx context.Context, userID uint, filter SavingFilter) ([]models.Saving, error)
	Update(ctx context.Context, saving *models.Saving) error
	Delete(ctx context.Context, id, userID uint) error
}

type savingRepository struct {
	db *gorm.DB
}

// NewSavingRepository creates a new savings repository
func NewSavingRepository(db *gorm.DB) SavingRepository {
	return &savingRepository{db: db}
}

func (r *savingRepository) Create(ctx context.Context, saving *models.Saving) error {
	return r.db.WithContext(ctx).Create(saving).Error
}

func (r *savingRepository) FindByID(ctx context.Context, id, userID uint) (*models.Saving, error) {
	var saving models.Saving
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&saving).Error
	if err != nil {
		return nil, err
	}
	return &saving, nil
}

func (r *savingRepository) FindByUser(ctx context.Context, userID uint, filter SavingFilter) ([]models.Saving, error) {
	var savings []models.Saving

	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(filter.Types) > 0 {
		db = db.Where("type IN ?", filter.Types)
	}
	db = applyDateRange(db, "date", filter.Range)

	err := db.Order("date DESC, id DESC").Find(&savings).Error
	return savings, err
}

func (r *savingRepository) Update(ctx context.Context, saving *models.Saving) error {
	return r.db.WithContext(ctx).Save(saving).Error
}

func (r *savingRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Saving{}).Error
}
