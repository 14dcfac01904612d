package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// LendRepository defines the interface for lend data access
type LendRepository interface {
	Create(ctx context.Context, lend *models.Lend) error
	FindByID(ctx context.Context, id, userID uint) (*models.Lend, error)
	FindByUser(ctx context.Context, userID uint, filter ObligationFilter) ([]models.Lend, error)
	FindPendingPastDue(ctx context.Context, userID uint) ([]models.Lend, error)
	Update(ctx context.Context, lend *models.Lend) error
	Delete(ctx context.Context, id, userID uint) error
}

type lendRepository struct {
	db *gorm.DB
}

// NewLendRepository creates a new lend repository
func NewLendRepository(db *gorm.DB) LendRepository {
	return &lendRepository{db: db}
}

func (r *lendRepository) Create(ctx context.Context, lend *models.Lend) error {
	return r.db.WithContext(ctx).Create(lend).Error
}

func (r *lendRepository) FindByID(ctx context.Context, id, userID uint) (*models.Lend, error) {
	var lend models.Lend
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&lend).Error
	if err != nil {
		return nil, err
	}
	return &lend, nil
}

func (r *lendRepository) FindByUser(ctx context.Context, userID uint, filter ObligationFilter) ([]models.Lend, error) {
	var lends []models.Lend

	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" && filter.Status != "all" {
		db = db.Where("status = ?", filter.Status)
	}
	db = applyDateRange(db, "date", filter.Range)

	err := db.Order("date DESC, id DESC").Find(&lends).Error
	return lends, err
}

// FindPendingPastDue returns unsettled lends whose transaction date has
// passed, used for collection reminder notifications.
func (r *lendRepository) FindPendingPastDue(ctx context.Context, userID uint) ([]models.Lend, error) {
	var lends []models.Lend
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ? AND date < CURRENT_DATE", userID, models.LendStatusSettled).
		Order("date ASC").
		Find(&lends).Error
	return lends, err
}

func (r *lendRepository) Update(ctx context.Context, lend *models.Lend) error {
	return r.db.WithContext(ctx).Save(lend).Error
}

// Delete removes the lend and, via the FK cascade, its repayment history.
func (r *lendRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Lend{}).Error
}
